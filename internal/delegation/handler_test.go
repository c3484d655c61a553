package delegation_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/bidquo/rfq-marketplace/internal"
	"github.com/bidquo/rfq-marketplace/internal/auth"
	delegationpkg "github.com/bidquo/rfq-marketplace/internal/delegation"
)

type mockDelegationService struct {
	createError      error
	updateError      error
	removeError      error
	listError        error
	checkError       error
	permissionsError error

	created     *delegationpkg.Delegation
	updated     *delegationpkg.Delegation
	listed      []delegationpkg.DelegationResponse
	granted     bool
	permissions []delegationpkg.PermissionTuple

	lastActor delegationpkg.Actor
	removedID int64
}

func (m *mockDelegationService) Create(actor delegationpkg.Actor, dto delegationpkg.CreateDelegationDTO) (*delegationpkg.Delegation, error) {
	m.lastActor = actor
	if m.createError != nil {
		return nil, m.createError
	}
	return m.created, nil
}

func (m *mockDelegationService) Update(actor delegationpkg.Actor, id int64, dto delegationpkg.UpdateDelegationDTO) (*delegationpkg.Delegation, error) {
	m.lastActor = actor
	if m.updateError != nil {
		return nil, m.updateError
	}
	return m.updated, nil
}

func (m *mockDelegationService) Remove(actor delegationpkg.Actor, id int64) error {
	m.lastActor = actor
	m.removedID = id
	return m.removeError
}

func (m *mockDelegationService) ListFrom(userID int64) ([]delegationpkg.DelegationResponse, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.listed, nil
}

func (m *mockDelegationService) ListTo(userID int64) ([]delegationpkg.DelegationResponse, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.listed, nil
}

func (m *mockDelegationService) CheckPermission(subjectID int64, resourceType delegationpkg.ResourceType, permission delegationpkg.PermissionKind, resourceID string) (bool, error) {
	if m.checkError != nil {
		return false, m.checkError
	}
	return m.granted, nil
}

func (m *mockDelegationService) GetMyPermissions(subjectID int64) ([]delegationpkg.PermissionTuple, error) {
	if m.permissionsError != nil {
		return nil, m.permissionsError
	}
	return m.permissions, nil
}

func requestWithUser(method, target string, body []byte, user *auth.User) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewBuffer(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req = req.WithContext(auth.ContextWithUser(req.Context(), user))
	}
	return req
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

var _ = ginkgo.Describe("DelegationHandler", func() {
	var (
		handler  *delegationpkg.Handler
		service  *mockDelegationService
		recorder *httptest.ResponseRecorder
		buyer    *auth.User
	)

	ginkgo.BeforeEach(func() {
		service = &mockDelegationService{}
		handler = delegationpkg.NewHandler(service, delegationpkg.NewCatalog())
		recorder = httptest.NewRecorder()
		buyer = &auth.User{ID: 1, Email: "maya@acme.example", Name: "Maya Buyer", Role: auth.RoleBuyer}
	})

	ginkgo.Context("CreateDelegation", func() {
		ginkgo.It("should create a delegation and return 201", func() {
			resourceID := "42"
			service.created = &delegationpkg.Delegation{
				ID:           7,
				FromUserID:   1,
				ToUserID:     2,
				ResourceType: delegationpkg.ResourceRFQ,
				ResourceID:   &resourceID,
				Permission:   delegationpkg.PermissionEdit,
				IsActive:     true,
			}
			body, _ := json.Marshal(map[string]interface{}{
				"to_user_id":    2,
				"resource_type": "rfq",
				"resource_id":   "42",
				"permission":    "edit",
			})
			req := requestWithUser("POST", "/api/v1/delegations", body, buyer)

			handler.CreateDelegation(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusCreated))
			var response delegationpkg.Delegation
			gomega.Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(gomega.Succeed())
			gomega.Expect(response.ID).To(gomega.Equal(int64(7)))
			gomega.Expect(service.lastActor.ID).To(gomega.Equal(int64(1)))
			gomega.Expect(service.lastActor.Role).To(gomega.Equal(auth.RoleBuyer))
		})

		ginkgo.It("should return 401 without an authenticated user", func() {
			req := requestWithUser("POST", "/api/v1/delegations", []byte(`{}`), nil)

			handler.CreateDelegation(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should return 400 for an invalid body", func() {
			req := requestWithUser("POST", "/api/v1/delegations", []byte("not json"), buyer)

			handler.CreateDelegation(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusBadRequest))
		})

		ginkgo.It("should map grantor authority failures to 403", func() {
			service.createError = internal.ErrGrantorAuthority
			body, _ := json.Marshal(map[string]interface{}{
				"to_user_id":    2,
				"resource_type": "rfq",
				"permission":    "edit",
			})
			req := requestWithUser("POST", "/api/v1/delegations", body, buyer)

			handler.CreateDelegation(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("should map a missing grantee to 404", func() {
			service.createError = internal.ErrGranteeNotFound
			body, _ := json.Marshal(map[string]interface{}{
				"to_user_id":    999,
				"resource_type": "rfq",
				"permission":    "edit",
			})
			req := requestWithUser("POST", "/api/v1/delegations", body, buyer)

			handler.CreateDelegation(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusNotFound))
		})
	})

	ginkgo.Context("UpdateDelegation", func() {
		ginkgo.It("should apply a lifecycle update and return 200", func() {
			service.updated = &delegationpkg.Delegation{ID: 7, FromUserID: 1, IsActive: false}
			body, _ := json.Marshal(map[string]interface{}{"is_active": false})
			req := requestWithUser("PUT", "/api/v1/delegations/7", body, buyer)
			req = withURLParam(req, "id", "7")

			handler.UpdateDelegation(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))
			var response delegationpkg.Delegation
			gomega.Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(gomega.Succeed())
			gomega.Expect(response.IsActive).To(gomega.BeFalse())
		})

		ginkgo.It("should return 400 for a non-numeric id", func() {
			body, _ := json.Marshal(map[string]interface{}{"is_active": false})
			req := requestWithUser("PUT", "/api/v1/delegations/abc", body, buyer)
			req = withURLParam(req, "id", "abc")

			handler.UpdateDelegation(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusBadRequest))
		})

		ginkgo.It("should map a foreign delegation to 403", func() {
			service.updateError = internal.ErrNotGrantor
			body, _ := json.Marshal(map[string]interface{}{"is_active": false})
			req := requestWithUser("PUT", "/api/v1/delegations/7", body, buyer)
			req = withURLParam(req, "id", "7")

			handler.UpdateDelegation(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusForbidden))
		})
	})

	ginkgo.Context("DeleteDelegation", func() {
		ginkgo.It("should revoke and return 204 with an empty body", func() {
			req := requestWithUser("DELETE", "/api/v1/delegations/7", nil, buyer)
			req = withURLParam(req, "id", "7")

			handler.DeleteDelegation(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusNoContent))
			gomega.Expect(recorder.Body.Len()).To(gomega.BeZero())
			gomega.Expect(service.removedID).To(gomega.Equal(int64(7)))
		})

		ginkgo.It("should map an unknown delegation to 404", func() {
			service.removeError = internal.ErrDelegationNotFound
			req := requestWithUser("DELETE", "/api/v1/delegations/999", nil, buyer)
			req = withURLParam(req, "id", "999")

			handler.DeleteDelegation(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusNotFound))
		})
	})

	ginkgo.Context("listing", func() {
		ginkgo.It("should list outgoing delegations", func() {
			service.listed = []delegationpkg.DelegationResponse{
				{Delegation: delegationpkg.Delegation{ID: 7, FromUserID: 1, ToUserID: 2}},
			}
			req := requestWithUser("GET", "/api/v1/delegations/from-me", nil, buyer)

			handler.ListFromMe(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))
			var response []delegationpkg.DelegationResponse
			gomega.Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(gomega.Succeed())
			gomega.Expect(response).To(gomega.HaveLen(1))
		})

		ginkgo.It("should map store outages to 503", func() {
			service.listError = internal.NewUnavailableError("delegation store unreachable", nil)
			req := requestWithUser("GET", "/api/v1/delegations/to-me", nil, buyer)

			handler.ListToMe(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusServiceUnavailable))
		})
	})

	ginkgo.Context("CheckPermission", func() {
		ginkgo.It("should answer with the grant decision", func() {
			service.granted = true
			req := requestWithUser("GET", "/api/v1/delegations/check-permission/rfq/edit?resourceId=42", nil, buyer)
			req = withURLParam(req, "resourceType", "rfq")
			req = withURLParam(req, "permission", "edit")

			handler.CheckPermission(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))
			var response delegationpkg.CheckPermissionResponse
			gomega.Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(gomega.Succeed())
			gomega.Expect(response.HasPermission).To(gomega.BeTrue())
		})

		ginkgo.It("should map unknown catalog values to 400", func() {
			service.checkError = internal.NewValidationError("unknown resource type", internal.ErrCodeInvalidResource)
			req := requestWithUser("GET", "/api/v1/delegations/check-permission/warehouse/edit", nil, buyer)
			req = withURLParam(req, "resourceType", "warehouse")
			req = withURLParam(req, "permission", "edit")

			handler.CheckPermission(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Context("GetMyPermissions", func() {
		ginkgo.It("should enumerate the effective permission set", func() {
			resourceID := "42"
			service.permissions = []delegationpkg.PermissionTuple{
				{ResourceType: delegationpkg.ResourceRFQ, ResourceID: &resourceID, Permission: delegationpkg.PermissionEdit},
			}
			req := requestWithUser("GET", "/api/v1/delegations/my-permissions", nil, buyer)

			handler.GetMyPermissions(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))
			var response map[string][]delegationpkg.PermissionTuple
			gomega.Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(gomega.Succeed())
			gomega.Expect(response["permissions"]).To(gomega.HaveLen(1))
		})
	})

	ginkgo.Context("catalog endpoints", func() {
		ginkgo.It("should serve the resource type enumeration", func() {
			req := requestWithUser("GET", "/api/v1/delegations/resource-types", nil, buyer)

			handler.GetResourceTypes(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))
			var response []delegationpkg.ResourceTypeSpec
			gomega.Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(gomega.Succeed())
			gomega.Expect(response).To(gomega.HaveLen(8))
		})

		ginkgo.It("should serve the permission kinds with applicability", func() {
			req := requestWithUser("GET", "/api/v1/delegations/permission-kinds", nil, buyer)

			handler.GetPermissionKinds(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))
			var response []delegationpkg.PermissionKindSpec
			gomega.Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(gomega.Succeed())
			gomega.Expect(response).To(gomega.HaveLen(8))
		})
	})
})
