package function

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestHelloSlackbot(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_SIGNING_SECRET", "secret")
	t.Setenv("EVENT_ARCHIVE_BUCKET", "")
	t.Setenv("LOG_LEVEL", "error")

	body := `{"token":"t","challenge":"abc123","type":"url_verification"}`
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	mac := hmac.New(sha256.New, []byte("secret"))
	fmt.Fprintf(mac, "v0:%s:%s", ts, body)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Slack-Request-Timestamp", ts)
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(mac.Sum(nil)))

	w := httptest.NewRecorder()
	HelloSlackbot(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "abc123" {
		t.Fatalf("url_verification = %d %q", w.Code, w.Body)
	}

	w = httptest.NewRecorder()
	HelloSlackbot(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unsigned status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
