package soap

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avstrong/dims/internal/dims"
	"github.com/avstrong/dims/internal/logger"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const xmlHeader = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

type Conf struct {
	L            *logger.Logger
	UserName     string
	PassWord     string
	Token        string
	InventoryURL string
	RatesURL     string
	Timeout      time.Duration
	Tracer       trace.Tracer
}

type Invoker struct {
	l      *logger.Logger
	conf   Conf
	client *http.Client
	tracer trace.Tracer
}

func New(conf Conf) (*Invoker, error) {
	if conf.UserName == "" || conf.PassWord == "" || conf.Token == "" {
		return nil, ErrIncompleteCredentials
	}

	if conf.InventoryURL == "" || conf.RatesURL == "" {
		return nil, ErrNoEndpoint
	}

	tracer := conf.Tracer
	if tracer == nil {
		tracer = otel.Tracer("dims/soap")
	}

	//nolint:exhaustruct
	client := &http.Client{Timeout: conf.Timeout}

	return &Invoker{
		l:      conf.L,
		conf:   conf,
		client: client,
		tracer: tracer,
	}, nil
}

type envelope struct {
	XMLName xml.Name       `xml:"soap:Envelope"`
	XSI     string         `xml:"xmlns:xsi,attr"`
	XSD     string         `xml:"xmlns:xsd,attr"`
	Soap    string         `xml:"xmlns:soap,attr"`
	Header  envelopeHeader `xml:"soap:Header"`
	Body    envelopeBody   `xml:"soap:Body"`
}

type envelopeHeader struct {
	Auth authentication `xml:"Authentication"`
}

type authentication struct {
	XMLNS    string `xml:"xmlns,attr"`
	UserName string `xml:"UserName"`
	PassWord string `xml:"PassWord"`
	Token    string `xml:"Token"`
}

type envelopeBody struct {
	Payload []byte `xml:",innerxml"`
}

func (i *Invoker) envelope(payload []byte) ([]byte, error) {
	env := envelope{
		XSI:  "http://www.w3.org/2001/XMLSchema-instance",
		XSD:  "http://www.w3.org/2001/XMLSchema",
		Soap: "http://schemas.xmlsoap.org/soap/envelope/",
		Header: envelopeHeader{
			Auth: authentication{
				XMLNS:    dims.Namespace,
				UserName: i.conf.UserName,
				PassWord: i.conf.PassWord,
				Token:    i.conf.Token,
			},
		},
		Body: envelopeBody{Payload: payload},
	}

	out, err := xml.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}

	return append([]byte(xmlHeader), out...), nil
}

// Call performs exactly one POST: no retry, and a non-2xx status propagates
// as a StatusError without any recovery attempt.
func (i *Invoker) Call(ctx context.Context, service dims.Service, action string, payload []byte) ([]byte, error) {
	start := time.Now().UTC()

	ctx, span := i.tracer.Start(ctx, "soap."+action)
	defer span.End()

	data, err := i.envelope(payload)
	if err != nil {
		return nil, err
	}

	endpoint := i.conf.InventoryURL
	if service == dims.ServiceRates {
		endpoint = i.conf.RatesURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", action, err)
	}

	requestID, ok := dims.RequestIDFromContext(ctx)
	if !ok || requestID == "" {
		requestID = uuid.NewString()
	}

	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", fmt.Sprintf("%s/%s", dims.Namespace, action))
	req.Header.Set("X-Request-Id", requestID)

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := i.client.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())

		return nil, fmt.Errorf("post %s to %s service: %w", action, service, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())

		return nil, fmt.Errorf("read %s response: %w", action, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		span.SetStatus(codes.Error, resp.Status)

		return nil, newStatusError(resp.StatusCode, respBody)
	}

	i.l.LogInfo(
		"type: access, action: %s, service: %s, status: %d, requestID: %s, latency: %s",
		action,
		service,
		resp.StatusCode,
		requestID,
		time.Since(start),
	)

	return respBody, nil
}
