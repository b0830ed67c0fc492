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

type PluginHandler struct {
	pluginService *service.PluginService
}

func NewPluginHandler(pluginService *service.PluginService) *PluginHandler {
	return &PluginHandler{
		pluginService: pluginService,
	}
}

// ListPlugins handles GET /api/v1/projects/:projectId/plugins
func (h *PluginHandler) ListPlugins(c *gin.Context) {
	actor, orgID, ok := actorFromContext(c)
	if !ok {
		return
	}

	plugins, err := h.pluginService.ListPlugins(actor, orgID, c.Param("projectId"))
	if err != nil {
		status, body := utils.GetErrorResponse(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, plugins)
}

// UpdatePlugins handles PUT /api/v1/projects/:projectId/plugins. The
// request carries the full set of plugin slugs that should be enabled.
func (h *PluginHandler) UpdatePlugins(c *gin.Context) {
	actor, orgID, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req dto.UpdatePluginsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			utils.FormatValidationError(err)))
		return
	}

	plugins, err := h.pluginService.SetEnabledPlugins(actor, orgID, c.Param("projectId"), req.Plugins)
	if err != nil {
		status, body := utils.GetErrorResponse(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, plugins)
}

// GetPluginConfig handles GET /api/v1/projects/:projectId/plugins/:pluginSlug
func (h *PluginHandler) GetPluginConfig(c *gin.Context) {
	actor, orgID, ok := actorFromContext(c)
	if !ok {
		return
	}

	config, err := h.pluginService.GetPluginConfig(actor, orgID, c.Param("projectId"), c.Param("pluginSlug"))
	if err != nil {
		status, body := utils.GetErrorResponse(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, config)
}

// UpdatePluginConfig handles PUT /api/v1/projects/:projectId/plugins/:pluginSlug
func (h *PluginHandler) UpdatePluginConfig(c *gin.Context) {
	actor, orgID, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req dto.UpdatePluginConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			utils.FormatValidationError(err)))
		return
	}

	config, err := h.pluginService.UpdatePluginConfig(actor, orgID, c.Param("projectId"), c.Param("pluginSlug"), req.Config)
	if err != nil {
		status, body := utils.GetErrorResponse(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, config)
}

// RegisterRoutes registers all project plugin routes
func (h *PluginHandler) RegisterRoutes(r *gin.Engine) {
	plugins := r.Group("/api/v1/projects/:projectId/plugins")
	{
		plugins.GET("", h.ListPlugins)
		plugins.PUT("", h.UpdatePlugins)
		plugins.GET("/:pluginSlug", h.GetPluginConfig)
		plugins.PUT("/:pluginSlug", h.UpdatePluginConfig)
	}
}
