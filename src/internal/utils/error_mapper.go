/*
 *  Copyright (c) 2026, WSO2 LLC. (http://www.wso2.org) All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 */

package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"tracker-api/src/internal/constants"

	"github.com/go-playground/validator/v10"
)

// makeError creates a standardized error response tuple
func makeError(status int, message string) (int, interface{}) {
	return status, NewErrorResponse(status, http.StatusText(status), message)
}

// FormatValidationError converts validator errors to user-friendly messages
func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error() // Not a validation error, return as-is
	}
	return formatValidationError(validationErrors)
}

func formatValidationError(validationErrors validator.ValidationErrors) string {
	var messages []string
	for _, fieldError := range validationErrors {
		fieldName := getUserFriendlyFieldName(fieldError.Field())
		message := getValidationErrorMessage(fieldName, fieldError.Tag(), fieldError.Param())
		messages = append(messages, message)
	}
	return strings.Join(messages, "; ")
}

// getUserFriendlyFieldName maps struct field names to user-friendly field names
func getUserFriendlyFieldName(fieldName string) string {
	fieldMap := map[string]string{
		"Name":            "name",
		"Slug":            "slug",
		"Owner":           "owner",
		"Status":          "status",
		"RemovalType":     "removal type",
		"TargetProjectID": "target project ID",
		"Plugins":         "plugins",
		"Config":          "config",
	}

	if friendly, exists := fieldMap[fieldName]; exists {
		return friendly
	}
	return strings.ToLower(fieldName)
}

// getValidationErrorMessage creates user-friendly validation error messages
func getValidationErrorMessage(fieldName, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", fieldName)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fieldName, param)
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", fieldName, param)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fieldName)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fieldName, strings.ReplaceAll(param, " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", fieldName)
	}
}

// GetErrorResponse maps domain errors and validation errors to an HTTP
// status and error response body
func GetErrorResponse(err error) (int, interface{}) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return makeError(http.StatusBadRequest, formatValidationError(validationErrors))
	}

	switch {
	// Project errors
	case errors.Is(err, constants.ErrProjectNotFound):
		return makeError(http.StatusNotFound, "Project not found")
	case errors.Is(err, constants.ErrProjectExists):
		return makeError(http.StatusConflict, "Project slug already exists in organization")
	case errors.Is(err, constants.ErrInvalidProjectName):
		return makeError(http.StatusBadRequest, "Project name is required")
	case errors.Is(err, constants.ErrInvalidProjectStatus):
		return makeError(http.StatusBadRequest, "Project status must be active or disabled")
	case errors.Is(err, constants.ErrCannotRemoveDefaultProject):
		return makeError(http.StatusBadRequest, "The default project cannot be removed")
	case errors.Is(err, constants.ErrMergeTargetRequired):
		return makeError(http.StatusBadRequest, "Merge removal requires a target project")
	case errors.Is(err, constants.ErrMergeTargetNotFound):
		return makeError(http.StatusBadRequest, "Merge target project not found")
	case errors.Is(err, constants.ErrMergeIntoSelf):
		return makeError(http.StatusBadRequest, "A project cannot be merged into itself")

	// Team errors
	case errors.Is(err, constants.ErrTeamNotFound):
		return makeError(http.StatusNotFound, "Team not found")
	case errors.Is(err, constants.ErrTeamExists):
		return makeError(http.StatusConflict, "Team slug already exists in organization")
	case errors.Is(err, constants.ErrInvalidTeamName):
		return makeError(http.StatusBadRequest, "Team name is required")

	// Plugin errors
	case errors.Is(err, constants.ErrPluginNotFound):
		return makeError(http.StatusNotFound, "Plugin not found")
	case errors.Is(err, constants.ErrPluginNotEnabled):
		return makeError(http.StatusBadRequest, "Plugin is not enabled for this project")
	case errors.Is(err, constants.ErrPluginNotConfigurable):
		return makeError(http.StatusBadRequest, "Plugin has no configuration")
	case errors.Is(err, constants.ErrPluginOptionInvalid):
		return makeError(http.StatusBadRequest, "Invalid plugin configuration value")

	// Permission errors
	case errors.Is(err, constants.ErrPermissionDenied):
		return makeError(http.StatusForbidden, "Permission denied")

	// Unknown removal modes are programming errors, not user errors
	case errors.Is(err, constants.ErrUnknownRemovalType):
		return makeError(http.StatusInternalServerError, "Unknown removal type")
	}

	return makeError(http.StatusInternalServerError, "Internal server error")
}
