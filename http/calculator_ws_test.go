package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"loan-calculator/domain"
)

func dialCalculator(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/calculator/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readView(t *testing.T, conn *websocket.Conn) domain.View {
	t.Helper()
	var view domain.View
	if err := conn.ReadJSON(&view); err != nil {
		t.Fatalf("read: %v", err)
	}
	return view
}

func TestCalculatorSocket_LiveUpdates(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(nil))
	defer srv.Close()

	conn := dialCalculator(t, srv, "")
	defer conn.Close()

	if view := readView(t, conn); view.State.HomeValue != 3000 {
		t.Fatalf("expected default view, got %+v", view.State)
	}

	if err := conn.WriteJSON(domain.FieldChange{Field: domain.FieldDownPayment, Value: 1000}); err != nil {
		t.Fatalf("write: %v", err)
	}
	view := readView(t, conn)
	if view.State.LoanAmount != 2000 {
		t.Errorf("expected loan 2000, got %+v", view.State)
	}

	if err := conn.WriteJSON(domain.FieldChange{Field: domain.FieldTermYears, Value: 7}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var reply errorResponse
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read: %v", err)
	}
	if reply.Error == "" {
		t.Error("expected an error reply for an unoffered term")
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read: %v", err)
	}
	if reply.Error != "invalid message" {
		t.Errorf("expected invalid message, got %q", reply.Error)
	}

	// the rejected events did not disturb the state
	if err := conn.WriteJSON(domain.FieldChange{Field: domain.FieldInterestRate, Value: 5}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if view := readView(t, conn); view.State.LoanAmount != 2000 || view.State.TermYears != 5 {
		t.Errorf("unexpected state %+v", view.State)
	}
}

func TestCalculatorSocket_AttachesToSession(t *testing.T) {
	h := newTestRouter(nil)
	srv := httptest.NewServer(h)
	defer srv.Close()

	created := createSession(t, h)

	conn := dialCalculator(t, srv, "?session="+created.ID)
	readView(t, conn)
	if err := conn.WriteJSON(domain.FieldChange{Field: domain.FieldHomeValue, Value: 5000}); err != nil {
		t.Fatalf("write: %v", err)
	}
	readView(t, conn)
	conn.Close()

	w := do(t, h, http.MethodGet, "/calculator/sessions/"+created.ID, "")
	var view domain.View
	if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.State.HomeValue != 5000 || view.State.DownPayment != 1000 {
		t.Errorf("expected socket change to be stored, got %+v", view.State)
	}
}

func TestCalculatorSocket_UnknownSession(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(nil))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/calculator/ws?session=missing"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("expected dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 response, got %v", resp)
	}
}
