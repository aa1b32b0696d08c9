package middleware_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nanihealth/clinic-management/internal/transport/middleware"
)

func TestMiddleware(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Middleware Suite")
}

var _ = Describe("LoggingMiddleware", func() {
	var (
		logOutput *bytes.Buffer
		logger    *slog.Logger
	)

	BeforeEach(func() {
		logOutput = &bytes.Buffer{}
		logger = slog.New(slog.NewTextHandler(logOutput, nil))
	})

	It("should mask password fields in the logged request body", func() {
		var seenBody string
		handler := middleware.LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, _ := io.ReadAll(r.Body)
			seenBody = string(b)
			w.WriteHeader(http.StatusCreated)
		}))

		body := `{"username":"dr.siti","password":"hunter2"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/staff", strings.NewReader(body))
		handler.ServeHTTP(httptest.NewRecorder(), req)

		Expect(logOutput.String()).To(ContainSubstring("[FILTERED]"))
		Expect(logOutput.String()).NotTo(ContainSubstring("hunter2"))
		Expect(seenBody).To(Equal(body), "the handler must still see the full body")
	})

	It("should log the response status and body", func() {
		handler := middleware.LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"patient not found"}`))
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/99", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		Expect(logOutput.String()).To(ContainSubstring("status_code=404"))
		Expect(logOutput.String()).To(ContainSubstring("patient not found"))
		Expect(logOutput.String()).To(ContainSubstring("level=WARN"))
	})
})
