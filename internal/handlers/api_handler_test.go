package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/onskyline/science-interview/internal/adapters/docstore"
	"github.com/onskyline/science-interview/internal/adapters/generation"
	"github.com/onskyline/science-interview/internal/prompts"
	"github.com/onskyline/science-interview/internal/services"
	"github.com/onskyline/science-interview/pkg/lambda"
)

// fakeGenerator records prompts and returns a fixed answer
type fakeGenerator struct {
	text    string
	err     error
	panics  bool
	prompts []prompts.Prompt
}

func (f *fakeGenerator) Generate(ctx context.Context, p prompts.Prompt) (string, error) {
	if f.panics {
		panic("generator exploded")
	}
	f.prompts = append(f.prompts, p)
	return f.text, f.err
}

func (f *fakeGenerator) Name() string { return "fake" }

func newTestHandler(t *testing.T, gen generation.Generator, store docstore.DocumentStore) *APIHandler {
	t.Helper()
	container, err := services.NewServiceContainer(gen, store)
	if err != nil {
		t.Fatalf("NewServiceContainer: %v", err)
	}
	return NewAPIHandler(container, 0)
}

func post(body string) *lambda.Request {
	return &lambda.Request{Method: http.MethodPost, Path: "/api", Body: []byte(body)}
}

func TestHandle_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(t, &fakeGenerator{}, docstore.NewMemoryStore())

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions, http.MethodHead} {
		t.Run(method, func(t *testing.T) {
			resp := h.Handle(context.Background(), &lambda.Request{Method: method, Body: []byte(`{"type":"question"}`)})
			if resp.StatusCode != http.StatusMethodNotAllowed {
				t.Errorf("status = %d, want 405", resp.StatusCode)
			}
			if string(resp.Body) != MessageMethodNotAllowed {
				t.Errorf("body = %q", resp.Body)
			}
		})
	}
}

func TestHandle_InvalidType(t *testing.T) {
	gen := &fakeGenerator{}
	h := newTestHandler(t, gen, docstore.NewMemoryStore())

	bodies := []string{
		`{"type":"unknown","payload":{}}`,
		`{"type":"QUESTION","payload":{"topic":"t"}}`,
		`{"type":"","payload":{}}`,
		`{"payload":{"topic":"t"}}`,
		`null`,
		`{"type":null,"payload":{}}`,
		`{"type":42,"payload":{}}`,
		`{"type":["question"]}`,
		`{"type":{"name":"login"},"payload":{"password":"x"}}`,
		`{"type":true}`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			resp := h.Handle(context.Background(), post(body))
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if string(resp.Body) != MessageInvalidType {
				t.Errorf("body = %q, want %q", resp.Body, MessageInvalidType)
			}
		})
	}

	if len(gen.prompts) != 0 {
		t.Error("generator must not be called for rejected requests")
	}
}

func TestHandle_InvalidBodyAndPayload(t *testing.T) {
	h := newTestHandler(t, &fakeGenerator{}, docstore.NewMemoryStore())

	tests := []struct {
		name     string
		body     string
		wantBody string
	}{
		{name: "empty body", body: "", wantBody: MessageInvalidBody},
		{name: "not json", body: "type=question", wantBody: MessageInvalidBody},
		{name: "array", body: `[]`, wantBody: MessageInvalidBody},
		{name: "truncated json", body: `{"type":"question"`, wantBody: MessageInvalidBody},
		{name: "question without topic", body: `{"type":"question","payload":{"category":"math"}}`, wantBody: MessageInvalidPayload},
		{name: "null topic", body: `{"type":"question","payload":{"topic":null}}`, wantBody: MessageInvalidPayload},
		{name: "question without payload", body: `{"type":"question"}`, wantBody: MessageInvalidPayload},
		{name: "feedback without answer", body: `{"type":"feedback","payload":{"question":"q"}}`, wantBody: MessageInvalidPayload},
		{name: "report history not a list", body: `{"type":"report","payload":{"sessionHistory":"x"}}`, wantBody: MessageInvalidPayload},
		{name: "report item without question", body: `{"type":"report","payload":{"sessionHistory":[{"answer":"a"}]}}`, wantBody: MessageInvalidPayload},
		{name: "login wrong type", body: `{"type":"login","payload":{"password":123}}`, wantBody: MessageInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := h.Handle(context.Background(), post(tt.body))
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if string(resp.Body) != tt.wantBody {
				t.Errorf("body = %q, want %q", resp.Body, tt.wantBody)
			}
		})
	}
}

func TestHandle_BodyTooLarge(t *testing.T) {
	container, _ := services.NewServiceContainer(&fakeGenerator{}, docstore.NewMemoryStore())
	h := NewAPIHandler(container, 16)

	resp := h.Handle(context.Background(), post(`{"type":"question","payload":{"topic":"long enough"}}`))
	if resp.StatusCode != http.StatusBadRequest || string(resp.Body) != MessageInvalidBody {
		t.Errorf("got %d %q", resp.StatusCode, resp.Body)
	}
}

func TestHandle_Question(t *testing.T) {
	tests := []struct {
		category    string
		wantSubject string
	}{
		{category: "math", wantSubject: prompts.SubjectMath},
		{category: "science", wantSubject: prompts.SubjectScience},
		{category: "physics", wantSubject: prompts.SubjectScience},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			gen := &fakeGenerator{text: "왜 그런가요?"}
			h := newTestHandler(t, gen, docstore.NewMemoryStore())

			resp := h.Handle(context.Background(), post(`{"type":"question","payload":{"topic":"자유낙하","category":"`+tt.category+`"}}`))
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, body %s", resp.StatusCode, resp.Body)
			}
			if resp.Headers["Content-Type"] != "application/json" {
				t.Errorf("content type = %q", resp.Headers["Content-Type"])
			}
			if string(resp.Body) != `{"question":"왜 그런가요?"}` {
				t.Errorf("body = %s", resp.Body)
			}
			if !strings.Contains(gen.prompts[0].System, tt.wantSubject) {
				t.Errorf("system prompt missing %q", tt.wantSubject)
			}
		})
	}
}

func TestHandle_Feedback(t *testing.T) {
	tests := []struct {
		name            string
		payload         string
		wantInstruction string
	}{
		{name: "with model answer", payload: `{"question":"q","answer":"a","modelAnswer":"m"}`, wantInstruction: prompts.FeedbackCompareInstruction},
		{name: "empty model answer", payload: `{"question":"q","answer":"a","modelAnswer":""}`, wantInstruction: prompts.FeedbackCurriculumInstruction},
		{name: "omitted model answer", payload: `{"question":"q","answer":"a"}`, wantInstruction: prompts.FeedbackCurriculumInstruction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{text: "좋아요"}
			h := newTestHandler(t, gen, docstore.NewMemoryStore())

			resp := h.Handle(context.Background(), post(`{"type":"feedback","payload":`+tt.payload+`}`))
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, body %s", resp.StatusCode, resp.Body)
			}
			if string(resp.Body) != `{"feedback":"좋아요"}` {
				t.Errorf("body = %s", resp.Body)
			}
			if !strings.Contains(gen.prompts[0].System, tt.wantInstruction) {
				t.Errorf("system prompt missing %q", tt.wantInstruction)
			}
		})
	}
}

func TestHandle_EmptyStringsAreValues(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantBody string
		wantUser string
	}{
		{
			name:     "empty answer",
			body:     `{"type":"feedback","payload":{"question":"q","answer":""}}`,
			wantBody: `{"feedback":"ok"}`,
			wantUser: "**질문:** q\n**학생 답안:** ",
		},
		{
			name:     "empty topic",
			body:     `{"type":"question","payload":{"topic":""}}`,
			wantBody: `{"question":"ok"}`,
			wantUser: "주제: ",
		},
		{
			name:     "empty history question",
			body:     `{"type":"report","payload":{"sessionHistory":[{"question":"","answer":"a"}]}}`,
			wantBody: `{"report":"ok"}`,
			wantUser: "문항 1: \n답변 1: a\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{text: "ok"}
			h := newTestHandler(t, gen, docstore.NewMemoryStore())

			resp := h.Handle(context.Background(), post(tt.body))
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, body %s", resp.StatusCode, resp.Body)
			}
			if string(resp.Body) != tt.wantBody {
				t.Errorf("body = %s, want %s", resp.Body, tt.wantBody)
			}
			if gen.prompts[0].User != tt.wantUser {
				t.Errorf("user prompt = %q, want %q", gen.prompts[0].User, tt.wantUser)
			}
		})
	}
}

func TestHandle_Report(t *testing.T) {
	gen := &fakeGenerator{text: "종합 리포트"}
	h := newTestHandler(t, gen, docstore.NewMemoryStore())

	body := `{"type":"report","payload":{"sessionHistory":[
		{"question":"Q1","answer":"A1"},
		{"question":"Q2","answer":"A2"},
		{"question":"Q3","answer":""}
	]}}`
	resp := h.Handle(context.Background(), post(body))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, resp.Body)
	}

	var out struct {
		Report string `json:"report"`
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil || out.Report != "종합 리포트" {
		t.Errorf("body = %s", resp.Body)
	}

	want := "문항 1: Q1\n답변 1: A1\n\n문항 2: Q2\n답변 2: A2\n\n문항 3: Q3\n답변 3: \n"
	if gen.prompts[0].User != want {
		t.Errorf("transcript = %q, want %q", gen.prompts[0].User, want)
	}
}

func TestHandle_Login(t *testing.T) {
	seeded := func() docstore.DocumentStore {
		store := docstore.NewMemoryStore()
		_ = store.Set(context.Background(), services.PasswordCollection, services.PasswordDocument, docstore.Document{"value": "science2025"})
		return store
	}

	tests := []struct {
		name     string
		store    docstore.DocumentStore
		password string
		wantBody string
	}{
		{name: "correct", store: seeded(), password: "science2025", wantBody: `{"success":true}`},
		{name: "incorrect", store: seeded(), password: "nope", wantBody: `{"success":false,"message":"비밀번호가 올바르지 않습니다."}`},
		{name: "empty password", store: seeded(), password: "", wantBody: `{"success":false,"message":"비밀번호가 올바르지 않습니다."}`},
		{name: "no document", store: docstore.NewMemoryStore(), password: "x", wantBody: `{"success":false,"message":"DB에 비밀번호가 없습니다. 관리자에게 문의하세요."}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, &fakeGenerator{}, tt.store)

			resp := h.Handle(context.Background(), post(`{"type":"login","payload":{"password":"`+tt.password+`"}}`))
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if string(resp.Body) != tt.wantBody {
				t.Errorf("body = %s, want %s", resp.Body, tt.wantBody)
			}
		})
	}
}

func TestHandle_InternalErrors(t *testing.T) {
	tests := []struct {
		name  string
		gen   *fakeGenerator
		store docstore.DocumentStore
		body  string
	}{
		{
			name:  "store unavailable",
			gen:   &fakeGenerator{},
			store: docstore.UnavailableStore{},
			body:  `{"type":"login","payload":{"password":"x"}}`,
		},
		{
			name:  "generator error",
			gen:   &fakeGenerator{err: &generation.UpstreamError{StatusCode: 503, Body: "overloaded"}},
			store: docstore.NewMemoryStore(),
			body:  `{"type":"question","payload":{"topic":"t"}}`,
		},
		{
			name:  "panic",
			gen:   &fakeGenerator{panics: true},
			store: docstore.NewMemoryStore(),
			body:  `{"type":"report","payload":{"sessionHistory":[{"question":"q","answer":"a"}]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook := logtest.NewGlobal()
			defer hook.Reset()

			h := newTestHandler(t, tt.gen, tt.store)
			resp := h.Handle(context.Background(), post(tt.body))

			if resp.StatusCode != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", resp.StatusCode)
			}
			if string(resp.Body) != `{"error":"Internal Server Error"}` {
				t.Errorf("body = %s", resp.Body)
			}

			logged := false
			for _, entry := range hook.AllEntries() {
				if entry.Level == logrus.ErrorLevel {
					logged = true
				}
			}
			if !logged {
				t.Error("expected the failure to be logged at error level")
			}
		})
	}
}

// End-to-end through the REST client against a fake generation API
func TestHandle_UpstreamStatus(t *testing.T) {
	t.Run("non-2xx becomes opaque 500", func(t *testing.T) {
		hook := logtest.NewGlobal()
		defer hook.Reset()

		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"message":"API key invalid"}}`))
		}))
		defer upstream.Close()

		gen := generation.NewRESTClient("k", "m", upstream.URL, upstream.Client())
		h := newTestHandler(t, gen, docstore.NewMemoryStore())

		resp := h.Handle(context.Background(), post(`{"type":"question","payload":{"topic":"t","category":"math"}}`))
		if resp.StatusCode != http.StatusInternalServerError {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		if strings.Contains(string(resp.Body), "API key invalid") {
			t.Error("upstream body leaked to caller")
		}

		found := false
		for _, entry := range hook.AllEntries() {
			if body, ok := entry.Data["body"].(string); ok && strings.Contains(body, "API key invalid") {
				found = entry.Data["status_code"] == http.StatusForbidden
			}
		}
		if !found {
			t.Error("upstream status and body should be logged server-side")
		}
	})

	t.Run("empty candidates yields fallback", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
		}))
		defer upstream.Close()

		gen := generation.NewRESTClient("k", "m", upstream.URL, upstream.Client())
		h := newTestHandler(t, gen, docstore.NewMemoryStore())

		resp := h.Handle(context.Background(), post(`{"type":"feedback","payload":{"question":"q","answer":"a"}}`))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}

		var out struct {
			Feedback string `json:"feedback"`
		}
		if err := json.Unmarshal(resp.Body, &out); err != nil {
			t.Fatal(err)
		}
		if out.Feedback != generation.FallbackText {
			t.Errorf("feedback = %q, want fallback", out.Feedback)
		}
	})
}
