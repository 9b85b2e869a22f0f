package auth

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func newSessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions(SessionCookieName, store))

	router.GET("/signin", func(c *gin.Context) {
		if err := SignIn(c, 42); err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.Status(http.StatusNoContent)
	})
	router.GET("/read", func(c *gin.Context) {
		userID, ok := ReadUserID(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, strconv.FormatInt(userID, 10))
	})
	router.GET("/signout", func(c *gin.Context) {
		if err := SignOut(c); err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.Status(http.StatusNoContent)
	})

	return router
}

func doWithCookies(router *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func responseCookies(rec *httptest.ResponseRecorder) []*http.Cookie {
	resp := http.Response{Header: rec.Header()}
	return resp.Cookies()
}

func TestSignInThenRead(t *testing.T) {
	router := newSessionRouter()

	rec := doWithCookies(router, "/signin", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	cookies := responseCookies(rec)
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie to be set")
	}

	rec = doWithCookies(router, "/read", cookies)
	if rec.Body.String() != "42" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestReadWithoutSession(t *testing.T) {
	router := newSessionRouter()

	rec := doWithCookies(router, "/read", nil)
	if rec.Body.String() != "anonymous" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestReadTamperedCookieFailsClosed(t *testing.T) {
	router := newSessionRouter()

	rec := doWithCookies(router, "/signin", nil)
	cookies := responseCookies(rec)
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie to be set")
	}

	// 署名を壊したCookieは匿名として扱われる
	tampered := *cookies[0]
	tampered.Value = tampered.Value + "x"
	rec = doWithCookies(router, "/read", []*http.Cookie{&tampered})
	if rec.Body.String() != "anonymous" {
		t.Fatalf("tampered cookie must read as anonymous, got %q", rec.Body.String())
	}
}

func TestReadExpiredSessionFailsClosed(t *testing.T) {
	old := maxSessionLifetime
	SetSessionLifetime(time.Nanosecond)
	defer SetSessionLifetime(old)

	router := newSessionRouter()

	rec := doWithCookies(router, "/signin", nil)
	cookies := responseCookies(rec)

	time.Sleep(time.Millisecond)
	rec = doWithCookies(router, "/read", cookies)
	if rec.Body.String() != "anonymous" {
		t.Fatalf("expired session must read as anonymous, got %q", rec.Body.String())
	}
}

func TestSignOutIdempotent(t *testing.T) {
	router := newSessionRouter()

	rec := doWithCookies(router, "/signin", nil)
	cookies := responseCookies(rec)

	rec = doWithCookies(router, "/signout", cookies)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	cookies = responseCookies(rec)

	rec = doWithCookies(router, "/read", cookies)
	if rec.Body.String() != "anonymous" {
		t.Fatalf("expected anonymous after signout, got %q", rec.Body.String())
	}

	// 既に匿名の状態でもう一度呼んでも同じ結果になる
	rec = doWithCookies(router, "/signout", cookies)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status on repeated signout: %d", rec.Code)
	}
}
