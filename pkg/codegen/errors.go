// Copyright 2025 DoorDash, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the specific language governing permissions and limitations under the License.

package codegen

import "errors"

var (
	ErrEmptyDocument       = errors.New("empty OpenAPI document")
	ErrAliasMapping        = errors.New("alias mapping must be a flat string-to-string JSON object")
	ErrModularReference    = errors.New("modular references are not supported in this version")
	ErrSchemaUnresolved    = errors.New("parameter schema cannot be resolved")
	ErrOperationNameEmpty  = errors.New("operation method cannot be an empty string")
	ErrRequestPathEmpty    = errors.New("request path cannot be an empty string")
	ErrTemplateDirNotFound = errors.New("template directory does not exist")
)
