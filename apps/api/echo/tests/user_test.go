package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	echoapi "github.com/drodriguezm/tablero/apps/api/echo"
	"github.com/drodriguezm/tablero/core/user"
)

func Test_userApi_login(t *testing.T) {
	resetDB(t)

	createUser(t, "Awe", "awe123", "awe@test.mx", "v3rys3cr3t", nil, true)
	createUser(t, "Sleeper", "sleeper", "sleeper@test.mx", "v3rys3cr3t", nil, false)

	login := func(uname, pwd string) []byte {
		return marchallObj(t, echoapi.LoginRequest{Username: uname, Password: pwd})
	}

	tests := []httpTest{
		{
			name: "unknown user", body: login("lol", "lol"),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "wrong password", body: login("awe123", "lol"),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "login with email", body: login("awe@test.mx", "v3rys3cr3t"),
			wantCode: http.StatusOK,
		},
		{
			name: "deactivated account", body: login("sleeper", "v3rys3cr3t"),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
		{
			name: "login with username", body: login("awe123", "v3rys3cr3t"),
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", tt.body)
			app.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
			}
			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
				return
			}
			var resp echoapi.LoginResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshalling LoginResponse: %v", err)
			}
			if resp.Token == "" {
				t.Error("expected a token")
			}
		})
	}
}

func Test_userApi_query(t *testing.T) {
	resetDB(t)

	admin := createUser(t, "Admin", "admin1", "admin@test.mx", "", user.AdminRoles, true)
	manager := createUser(t, "Manager", "manager1", "manager@test.mx", "", user.ManagerRoles, true)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Admin required", token: getToken(t, manager),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{name: "Get all", token: getToken(t, admin), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/users", tt.token)
			app.ServeHTTP(rec, req)

			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
				return
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
			}
			var users []user.User
			if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
				t.Fatalf("unmarshalling users: %v", err)
			}
			if len(users) != 2 {
				t.Errorf("got %d users; want 2", len(users))
			}
		})
	}
}

func Test_userApi_retrieve(t *testing.T) {
	resetDB(t)

	admin := createUser(t, "Admin", "admin1", "admin@test.mx", "", user.AdminRoles, true)
	manager := createUser(t, "Manager", "manager1", "manager@test.mx", "", user.ManagerRoles, true)

	tests := []httpTest{
		{name: "Auth required", path: "/v1/users/" + manager.ID, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "owner can retrieve self", path: "/v1/users/" + manager.ID, token: getToken(t, manager),
			wantCode: http.StatusOK, wantData: marchallObj(t, manager),
		},
		{
			name: "admin can retrieve any", path: "/v1/users/" + manager.ID, token: getToken(t, admin),
			wantCode: http.StatusOK, wantData: marchallObj(t, manager),
		},
		{
			name: "non-admin cannot retrieve others", path: "/v1/users/" + admin.ID, token: getToken(t, manager),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name: "unknown id", path: "/v1/users/lol", token: getToken(t, admin),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_destroy(t *testing.T) {
	resetDB(t)

	admin := createUser(t, "Admin", "admin1", "admin@test.mx", "", user.AdminRoles, true)
	manager := createUser(t, "Manager", "manager1", "manager@test.mx", "", user.ManagerRoles, true)

	t.Run("admin cannot delete self", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/users/"+admin.ID, getToken(t, admin))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("non-admin cannot delete", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/users/"+admin.ID, getToken(t, manager))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("admin deletes another user", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/users/"+manager.ID, getToken(t, admin))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusNoContent)
		}
		if _, err := usrRepo.GetUserByID(manager.ID); err != user.ErrNotFound {
			t.Errorf("expected user to be gone; err = %v", err)
		}
	})
}

func Test_userApi_refreshToken(t *testing.T) {
	resetDB(t)

	usr := createUser(t, "Awe", "awe123", "awe@test.mx", "", user.ManagerRoles, true)

	req, rec := newAuthRequest(http.MethodGet, "/v1/users/token-refresh", getToken(t, usr))
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
	}
	var resp echoapi.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshalling LoginResponse: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a refreshed token")
	}
}
