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

package handler

import (
	"net/http"

	"tracker-api/src/internal/dto"
	"tracker-api/src/internal/service"
	"tracker-api/src/internal/utils"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService *service.ProjectService
}

func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject handles POST /api/v1/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	actor, orgID, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			utils.FormatValidationError(err)))
		return
	}

	project, err := h.projectService.CreateProject(actor, orgID, &req)
	if err != nil {
		status, body := utils.GetErrorResponse(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// ListProjects handles GET /api/v1/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	actor, orgID, ok := actorFromContext(c)
	if !ok {
		return
	}

	projects, err := h.projectService.ListProjects(actor, orgID)
	if err != nil {
		status, body := utils.GetErrorResponse(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// GetProject handles GET /api/v1/projects/:projectId
func (h *ProjectHandler) GetProject(c *gin.Context) {
	actor, orgID, ok := actorFromContext(c)
	if !ok {
		return
	}

	projectID := c.Param("projectId")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			"Project ID is required"))
		return
	}

	project, err := h.projectService.GetProject(actor, orgID, projectID)
	if err != nil {
		status, body := utils.GetErrorResponse(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateProject handles PUT /api/v1/projects/:projectId
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	actor, orgID, ok := actorFromContext(c)
	if !ok {
		return
	}

	projectID := c.Param("projectId")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			"Project ID is required"))
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			utils.FormatValidationError(err)))
		return
	}

	project, err := h.projectService.UpdateProject(actor, orgID, projectID, &req)
	if err != nil {
		status, body := utils.GetErrorResponse(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, project)
}

// RemoveProject handles DELETE /api/v1/projects/:projectId. The request
// body selects the removal mode: delete, merge into another project, or
// disable.
func (h *ProjectHandler) RemoveProject(c *gin.Context) {
	actor, orgID, ok := actorFromContext(c)
	if !ok {
		return
	}

	projectID := c.Param("projectId")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			"Project ID is required"))
		return
	}

	var req dto.RemoveProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			utils.FormatValidationError(err)))
		return
	}

	if err := h.projectService.RemoveProject(actor, orgID, projectID, &req); err != nil {
		status, body := utils.GetErrorResponse(err)
		c.JSON(status, body)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers all project management routes
func (h *ProjectHandler) RegisterRoutes(r *gin.Engine) {
	projects := r.Group("/api/v1/projects")
	{
		projects.GET("", h.ListProjects)
		projects.POST("", h.CreateProject)
		projects.GET("/:projectId", h.GetProject)
		projects.PUT("/:projectId", h.UpdateProject)
		projects.DELETE("/:projectId", h.RemoveProject)
	}
}
