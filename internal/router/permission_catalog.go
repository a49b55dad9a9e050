package router

import (
	"net/http"
	"sort"
	"strings"

	"github.com/foodgram-next/internal/authz"

	"github.com/gin-gonic/gin"
)

const adminRoutePrefix = "/api/v1/admin/"

// 不经过 RBAC 的后台路由
var catalogSkipped = map[string]bool{
	adminRoutePrefix + "login": true,
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// buildAdminPermissionCatalog 从已注册的后台路由生成可授权的 METHOD:object 列表，供角色编辑页选择
func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	items := []adminPermissionCatalogItem{}
	if engine == nil {
		return items
	}
	seen := map[string]bool{}
	for _, route := range engine.Routes() {
		if route.Method == http.MethodOptions || route.Method == http.MethodHead {
			continue
		}
		if !strings.HasPrefix(route.Path, adminRoutePrefix) || catalogSkipped[route.Path] {
			continue
		}
		object := authz.NormalizeObject(route.Path)
		permission := route.Method + ":" + object
		if seen[permission] {
			continue
		}
		seen[permission] = true
		items = append(items, adminPermissionCatalogItem{
			Module:     permissionModule(object),
			Method:     route.Method,
			Object:     object,
			Permission: permission,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		if a.Object != b.Object {
			return a.Object < b.Object
		}
		return a.Method < b.Method
	})
	return items
}

// permissionModule /admin/users/:id/status 归入 users
func permissionModule(object string) string {
	segments := strings.Split(strings.Trim(object, "/"), "/")
	switch {
	case segments[0] == "":
		return "system"
	case segments[0] != "admin" || len(segments) == 1:
		return segments[0]
	}
	return segments[1]
}
