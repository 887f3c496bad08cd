// Copyright 2024 Syntio Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errtemplates offers convenience functions to standardize error messages and simplify proper error wrapping.
package errtemplates

import (
	"github.com/pkg/errors"
)

const (
	notAbsoluteURLTemplate         = "pushgateway address %s is not an absolute url"
	emptyJobNameMessage            = "job name must not be empty"
	slashInNameTemplate            = "job and grouping label names and values must not contain '/': '%s'"
	jobLabelCollisionTemplate      = "pushed metric %s already contains a job label"
	groupingLabelCollisionTemplate = "pushed metric %s already contains grouping label '%s'"
)

// NotAbsoluteURL returns an error stating that the given pushgateway address is not an absolute url.
func NotAbsoluteURL(addr string) error {
	return errors.Errorf(notAbsoluteURLTemplate, addr)
}

// EmptyJobName returns an error stating that an empty job name was provided.
func EmptyJobName() error {
	return errors.New(emptyJobNameMessage)
}

// SlashInName returns an error stating that the given job or grouping label segment contains '/'.
func SlashInName(value string) error {
	return errors.Errorf(slashInNameTemplate, value)
}

// JobLabelCollision returns an error stating that a pushed metric already carries the reserved job label.
func JobLabelCollision(metric string) error {
	return errors.Errorf(jobLabelCollisionTemplate, metric)
}

// GroupingLabelCollision returns an error stating that a pushed metric already carries one of the grouping labels.
func GroupingLabelCollision(metric, label string) error {
	return errors.Errorf(groupingLabelCollisionTemplate, metric, label)
}
