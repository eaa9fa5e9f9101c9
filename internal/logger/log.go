package logger

import (
	"bytes"
	"io"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sizeLimit = 240 * 1024 // Cloud log entry size limit, with headroom
	truncated = "TRUNCATED..."

	// RequestIDKey is the gin.Context key holding the request ID
	RequestIDKey = "requestID"

	cloudTraceHeader = "X-Cloud-Trace-Context"
)

// logRecord for Request Log
type logRecord struct {
	RequestID       string
	Timestamp       time.Time
	Duration        time.Duration
	HTTPStatusCode  int
	ErrorStackTrace string
	HTTPMethod      string
	RequestPath     string
	RequestQuery    string
	RequestBody     string
	ResponseBody    string
	SlackRetryNum   string
}

func (r *logRecord) size() int {
	return len(r.RequestBody) + len(r.ResponseBody) + len(r.ErrorStackTrace)
}

func (r *logRecord) fields() []zap.Field {
	return []zap.Field{
		zap.String("type", "request"),
		zap.String("request_id", r.RequestID),
		zap.Time("timestamp", r.Timestamp),
		zap.Duration("duration", r.Duration),
		zap.Int("status", r.HTTPStatusCode),
		zap.String("method", r.HTTPMethod),
		zap.String("path", r.RequestPath),
		zap.String("query", r.RequestQuery),
		zap.String("request_body", r.RequestBody),
		zap.String("response_body", r.ResponseBody),
		zap.String("slack_retry_num", r.SlackRetryNum),
		zap.String("stack", r.ErrorStackTrace),
	}
}

// GinLogMiddleware support request log using gin middleware
func GinLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// overwrite the gin.Context.Writer to log response body
		respLogWriter := &respLogWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = respLogWriter

		record := initLogRecord(c)
		c.Set(RequestIDKey, record.RequestID)

		defer func() {
			logTruncate(record)
			// finally print request log even panic
			GetLogger().Info("request", record.fields()...)
		}()

		defer func() {
			if r := recover(); r != nil {
				record.HTTPStatusCode = http.StatusInternalServerError
				record.ErrorStackTrace = string(debug.Stack())
				record.Duration = time.Since(record.Timestamp)
				// throw the panic to the later middlewares
				panic(r)
			}
		}()

		c.Next()

		record.HTTPStatusCode = c.Writer.Status()
		record.Duration = time.Since(record.Timestamp)
		record.ResponseBody = respLogWriter.body.String()
	}
}

// requestID prefers the Lambda request ID, then the Cloud Functions trace ID
func requestID(c *gin.Context) string {
	if lc, ok := lambdacontext.FromContext(c.Request.Context()); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	if trace := c.GetHeader(cloudTraceHeader); trace != "" {
		// "TRACE_ID/SPAN_ID;o=TRACE_TRUE"
		if i := strings.IndexByte(trace, '/'); i > 0 {
			return trace[:i]
		}
		return trace
	}
	return uuid.NewString()
}

func logTruncate(record *logRecord) {
	if record.size() < sizeLimit {
		return
	}
	respSize := len(record.ResponseBody)
	reqSize := len(record.RequestBody)

	record.ResponseBody = truncated
	if record.size()-respSize > sizeLimit {
		record.RequestBody = truncated
	}
	if record.size()-respSize-reqSize > sizeLimit {
		record.ErrorStackTrace = truncated
	}
}

type respLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w respLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w respLogWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func initLogRecord(c *gin.Context) *logRecord {
	record := &logRecord{
		RequestID:     requestID(c),
		Timestamp:     time.Now(),
		HTTPMethod:    c.Request.Method,
		RequestPath:   c.Request.URL.Path,
		RequestQuery:  c.Request.URL.RawQuery,
		SlackRetryNum: c.GetHeader("X-Slack-Retry-Num"),
	}

	if c.Request.Body == nil {
		return record
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		GetLogger().Warn("failed to read request body for logging", zap.Error(err))
	}
	// reattach request body for later use
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	record.RequestBody = string(body)

	return record
}
