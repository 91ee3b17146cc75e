package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/latinacademy/academia/core/user"
)

func Test_userApi_login(t *testing.T) {
	srv, svcs := setupServer(t)

	createTestUser(t, svcs.userRepo, "Active Admin", "awesome", "awe@academy.test", "LePass123!", []string{user.RoleAdmin}, true)
	createTestUser(t, svcs.userRepo, "Inactive", "sleeper", "slp@academy.test", "LePass123!", nil, false)

	tests := []httpTest{
		{
			name:     "empty credentials",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown user",
			body:     []byte(`{"username": "ghost", "password": "LePass123!"}`),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name:     "wrong password",
			body:     []byte(`{"username": "awesome", "password": "nope"}`),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name:     "deactivated account",
			body:     []byte(`{"username": "sleeper", "password": "LePass123!"}`),
			wantCode: http.StatusForbidden,
			wantData: marshallObj(t, httpErr{Error: "account deactivated"}),
		},
		{
			name:     "login by username",
			body:     []byte(`{"username": "awesome", "password": "LePass123!"}`),
			wantCode: http.StatusOK,
		},
		{
			name:     "login by email",
			body:     []byte(`{"username": "awe@academy.test", "password": "LePass123!"}`),
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", tt.body)
			srv.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusOK {
				if rec.Code != http.StatusOK {
					t.Fatalf("failed! code = %v; body = %v", rec.Code, rec.Body.String())
				}
				var res LoginResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
					t.Fatalf("unmarshalling LoginResponse failed: %v", err)
				}
				if res.Token == "" {
					t.Error("failed! empty token")
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_permissions(t *testing.T) {
	srv, svcs := setupServer(t)

	admin := createTestUser(t, svcs.userRepo, "Admin", "adminus", "admin@academy.test", "", []string{user.RoleAdmin}, true)
	employee := createTestUser(t, svcs.userRepo, "Employee", "employus", "emp@academy.test", "", []string{user.RoleEmployee}, true)
	adminToken := getToken(t, admin)
	employeeToken := getToken(t, employee)

	tests := []httpTest{
		{
			name:     "query requires auth",
			method:   http.MethodGet,
			path:     "/v1/users",
			wantCode: http.StatusUnauthorized,
			wantData: marshallObj(t, errMissingToken),
		},
		{
			name:     "query requires admin",
			method:   http.MethodGet,
			path:     "/v1/users",
			token:    employeeToken,
			wantCode: http.StatusForbidden,
		},
		{
			name:     "admin queries all",
			method:   http.MethodGet,
			path:     "/v1/users",
			token:    adminToken,
			wantCode: http.StatusOK,
			wantData: marshallObj(t, []user.User{admin, employee}),
		},
		{
			name:     "roles list",
			method:   http.MethodGet,
			path:     "/v1/users/roles",
			token:    adminToken,
			wantCode: http.StatusOK,
			wantData: marshallObj(t, user.Roles),
		},
		{
			name:     "own detail allowed",
			method:   http.MethodGet,
			path:     "/v1/users/" + employee.ID,
			token:    employeeToken,
			wantCode: http.StatusOK,
			wantData: marshallObj(t, employee),
		},
		{
			name:     "other's detail hidden",
			method:   http.MethodGet,
			path:     "/v1/users/" + admin.ID,
			token:    employeeToken,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "admin reads any detail",
			method:   http.MethodGet,
			path:     "/v1/users/" + employee.ID,
			token:    adminToken,
			wantCode: http.StatusOK,
			wantData: marshallObj(t, employee),
		},
		{
			name:     "admin cannot delete self",
			method:   http.MethodDelete,
			path:     "/v1/users/" + admin.ID,
			token:    adminToken,
			wantCode: http.StatusForbidden,
		},
		{
			name:     "admin deletes other",
			method:   http.MethodDelete,
			path:     "/v1/users/" + employee.ID,
			token:    adminToken,
			wantCode: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			srv.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_register(t *testing.T) {
	srv, svcs := setupServer(t)

	admin := createTestUser(t, svcs.userRepo, "Admin", "adminus", "admin@academy.test", "", []string{user.RoleAdmin}, true)
	employee := createTestUser(t, svcs.userRepo, "Employee", "employus", "emp@academy.test", "", []string{user.RoleEmployee}, true)

	body := []byte(`{
		"name": "New Teacher",
		"username": "teachus",
		"email": "teach@academy.test",
		"password": "VeryStr0ng#Pass",
		"password_confirm": "VeryStr0ng#Pass",
		"roles": ["teacher"]
	}`)

	t.Run("employee cannot register users", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/users/register", getToken(t, employee), body)
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("admin registers a teacher", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/users/register", getToken(t, admin), body)
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}
		var usr user.User
		if err := json.Unmarshal(rec.Body.Bytes(), &usr); err != nil {
			t.Fatalf("unmarshalling User failed: %v", err)
		}
		if !usr.IsTeacher() {
			t.Errorf("failed! roles = %v; want teacher", usr.Roles)
		}
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/users/register", getToken(t, admin), body)
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusBadRequest)
		}
	})
}
