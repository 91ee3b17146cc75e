package echoapi

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/latinacademy/academia/core"
	"github.com/latinacademy/academia/core/academy"
	"github.com/latinacademy/academia/core/attendance"
	"github.com/latinacademy/academia/core/group"
	"github.com/latinacademy/academia/core/user"
	logsvc "github.com/latinacademy/academia/services/logger"
	notifsvc "github.com/latinacademy/academia/services/notification"
	"github.com/latinacademy/academia/storage/kvrepos"
	"github.com/latinacademy/academia/storage/kvstore"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

type testServices struct {
	user       user.ServiceInterface
	academy    *academy.Service
	group      *group.Service
	attendance *attendance.Service
	userRepo   user.Repository
	repo       academy.Repository
	groupRepo  group.Repository
}

func setupServer(t *testing.T) (Server, *testServices) {
	t.Helper()
	core.Conf.TestMode = true
	core.Conf.Debug = false

	store, err := kvstore.OpenFile(t.TempDir())
	if err != nil {
		t.Fatalf("setupServer() failed: %v", err)
	}
	db := kvrepos.Open(store)

	userRepo := kvrepos.NewUserRepository(db)
	academyRepo := kvrepos.NewAcademyRepository(db)
	groupRepo := kvrepos.NewGroupRepository(db)
	attRepo := kvrepos.NewAttendanceRepository(db)

	logger := logsvc.NewStdLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags))
	notifier := notifsvc.NewConsoleServiceMock()

	userSvc := user.NewService(userRepo)
	academySvc := academy.NewService(academyRepo)
	groupSvc := group.NewService(groupRepo, academySvc)
	attSvc := attendance.NewService(attRepo, groupSvc, academySvc, notifier, logger)

	srv := NewServer(&Options{
		Addr:           "localhost:0",
		DisableReqLogs: true,
		Logger:         logger,
		UserSvc:        userSvc,
		AcademySvc:     academySvc,
		GroupSvc:       groupSvc,
		AttendanceSvc:  attSvc,
	})

	return srv, &testServices{
		user:       userSvc,
		academy:    academySvc,
		group:      groupSvc,
		attendance: attSvc,
		userRepo:   userRepo,
		repo:       academyRepo,
		groupRepo:  groupRepo,
	}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func createTestUser(t *testing.T, repo user.Repository, name, uname, email, pwd string, roles []string, isActive bool) user.User {
	t.Helper()
	tstamp := time.Now().UTC()
	usr := user.User{
		ID:        core.NewID("usr-"),
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createTestUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("createTestUser() failed: %v", err)
	}
	return usr
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
