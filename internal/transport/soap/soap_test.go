package soap_test

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avstrong/dims/internal/dims"
	"github.com/avstrong/dims/internal/logger"
	"github.com/avstrong/dims/internal/transport/soap"
)

func discardLogger() *logger.Logger {
	return logger.New(log.New(io.Discard, "", 0))
}

func testConf(inventoryURL, ratesURL string) soap.Conf {
	return soap.Conf{
		L:            discardLogger(),
		UserName:     "u",
		PassWord:     "p",
		Token:        "t",
		InventoryURL: inventoryURL,
		RatesURL:     ratesURL,
	}
}

func TestNewRequiresCredentials(t *testing.T) {
	tests := []struct {
		name string
		conf soap.Conf
		want error
	}{
		{
			name: "all set",
			conf: testConf("http://inventory", "http://rates"),
		},
		{
			name: "missing username",
			conf: soap.Conf{L: discardLogger(), PassWord: "p", Token: "t", InventoryURL: "http://i", RatesURL: "http://r"},
			want: soap.ErrIncompleteCredentials,
		},
		{
			name: "missing password",
			conf: soap.Conf{L: discardLogger(), UserName: "u", Token: "t", InventoryURL: "http://i", RatesURL: "http://r"},
			want: soap.ErrIncompleteCredentials,
		},
		{
			name: "missing token",
			conf: soap.Conf{L: discardLogger(), UserName: "u", PassWord: "p", InventoryURL: "http://i", RatesURL: "http://r"},
			want: soap.ErrIncompleteCredentials,
		},
		{
			name: "missing endpoints",
			conf: soap.Conf{L: discardLogger(), UserName: "u", PassWord: "p", Token: "t"},
			want: soap.ErrNoEndpoint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := soap.New(tt.conf)

			if tt.want == nil {
				if err != nil {
					t.Errorf("New() error = %v, want nil", err)
				}

				return
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCallEnvelopeAndHeaders(t *testing.T) {
	var (
		gotHeader http.Header
		gotBody   string
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()

		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.Write([]byte("<Response/>"))
	}))
	defer srv.Close()

	inv, err := soap.New(testConf(srv.URL, srv.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := dims.NewContextWithRequestID(context.Background(), "req-42")

	payload := []byte(`<GetRoomList xmlns="https://dims.ignitetravel.com/IMSXML"><Message/></GetRoomList>`)

	if _, err := inv.Call(ctx, dims.ServiceInventory, dims.ActionGetRoomList, payload); err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	if got := gotHeader.Get("Content-Type"); got != "text/xml; charset=utf-8" {
		t.Errorf("Call() Content-Type = %q", got)
	}

	wantAction := "https://dims.ignitetravel.com/IMSXML/GetRoomList"
	if got := gotHeader.Get("SOAPAction"); got != wantAction {
		t.Errorf("Call() SOAPAction = %q, want %q", got, wantAction)
	}

	if got := gotHeader.Get("X-Request-Id"); got != "req-42" {
		t.Errorf("Call() X-Request-Id = %q, want the id from the context", got)
	}

	for _, want := range []string{
		`<?xml version="1.0" encoding="utf-8"?>`,
		`<Authentication xmlns="https://dims.ignitetravel.com/IMSXML">`,
		"<UserName>u</UserName>",
		"<PassWord>p</PassWord>",
		"<Token>t</Token>",
		string(payload),
	} {
		if !strings.Contains(gotBody, want) {
			t.Errorf("Call() envelope missing %q:\n%s", want, gotBody)
		}
	}
}

func TestCallGeneratesRequestID(t *testing.T) {
	var gotID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-Id")

		w.Write([]byte("<Response/>"))
	}))
	defer srv.Close()

	inv, err := soap.New(testConf(srv.URL, srv.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := inv.Call(context.Background(), dims.ServiceInventory, dims.ActionGetRoomList, []byte("<x/>")); err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	if gotID == "" {
		t.Error("Call() should generate a request id when the context has none")
	}
}

func TestCallStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	inv, err := soap.New(testConf(srv.URL, srv.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = inv.Call(context.Background(), dims.ServiceInventory, dims.ActionGetRoomList, []byte("<x/>"))

	statusErr := soap.IsStatusError(err)
	if statusErr == nil {
		t.Fatalf("Call() error = %v, want a StatusError", err)
	}

	if statusErr.Code != http.StatusInternalServerError {
		t.Errorf("Call() status = %d, want 500", statusErr.Code)
	}
}

func TestCallEndpointSelection(t *testing.T) {
	var inventoryHits, ratesHits int

	inventorySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		inventoryHits++

		w.Write([]byte("<Response/>"))
	}))
	defer inventorySrv.Close()

	ratesSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		ratesHits++

		w.Write([]byte("<Response/>"))
	}))
	defer ratesSrv.Close()

	inv, err := soap.New(testConf(inventorySrv.URL, ratesSrv.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := inv.Call(context.Background(), dims.ServiceInventory, "A", []byte("<x/>")); err != nil {
		t.Fatalf("Call(inventory) error = %v", err)
	}

	if _, err := inv.Call(context.Background(), dims.ServiceRates, "A", []byte("<x/>")); err != nil {
		t.Fatalf("Call(rates) error = %v", err)
	}

	if inventoryHits != 1 || ratesHits != 1 {
		t.Errorf("Call() hits = inventory %d, rates %d; want exactly one each", inventoryHits, ratesHits)
	}
}

func TestClientRoundTrip(t *testing.T) {
	const response = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <GetRoomListResponse xmlns="https://dims.ignitetravel.com/IMSXML">
      <Rooms>
        <Room><RoomTypeId>11</RoomTypeId><Description>Garden View</Description></Room>
        <Room><RoomTypeId>7</RoomTypeId><Description>Ocean Suite</Description></Room>
      </Rooms>
      <LinkedRates>
        <LinkedRate><RateId>101</RateId><RateDescription>Best Available</RateDescription><RoomId>7</RoomId></LinkedRate>
      </LinkedRates>
    </GetRoomListResponse>
  </soap:Body>
</soap:Envelope>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "<Request>RoomsList</Request>") {
			t.Errorf("unexpected request body:\n%s", body)
		}

		w.Write([]byte(response))
	}))
	defer srv.Close()

	inv, err := soap.New(testConf(srv.URL, srv.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	client := dims.New(discardLogger(), inv)

	list, err := client.GetRoomList(context.Background(), dims.RoomListInput{ResortID: "5"})
	if err != nil {
		t.Fatalf("GetRoomList() error = %v", err)
	}

	if len(list.Rooms) != 2 {
		t.Fatalf("GetRoomList() rooms = %d, want 2", len(list.Rooms))
	}

	if list.Rooms[0].ID != 11 || list.Rooms[1].ID != 7 {
		t.Errorf("GetRoomList() room order = %d, %d; want 11, 7", list.Rooms[0].ID, list.Rooms[1].ID)
	}

	if list.Rooms[1].LinkedRate == nil || list.Rooms[1].LinkedRate.ID != 101 {
		t.Errorf("GetRoomList() linked rate = %+v, want rate 101 on room 7", list.Rooms[1].LinkedRate)
	}
}
