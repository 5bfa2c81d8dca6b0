// Package mail envía el resumen de una solicitud nueva a la lista de distribución por SMTP.
package mail

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"io"
	texttemplate "text/template"

	"gopkg.in/gomail.v2"

	"github.com/kossodo/merch-api/internal/application/request"
	"github.com/kossodo/merch-api/internal/domain/entity"
	"github.com/kossodo/merch-api/pkg/config"
)

// Transport lo que se necesita del cliente SMTP; *gomail.Dialer lo cumple.
type Transport interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender implementa notify.Sender con gomail.
type SMTPSender struct {
	transport Transport
	from      string
	to        []string
	renderer  request.SheetRenderer // opcional: adjunta la hoja PDF
}

// NewSMTPSender construye el sender con el relay configurado.
func NewSMTPSender(cfg config.SMTPConfig, to []string, renderer request.SheetRenderer) *SMTPSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return NewSMTPSenderWithTransport(d, cfg.From, to, renderer)
}

// NewSMTPSenderWithTransport permite inyectar el transporte (tests).
func NewSMTPSenderWithTransport(t Transport, from string, to []string, renderer request.SheetRenderer) *SMTPSender {
	return &SMTPSender{transport: t, from: from, to: to, renderer: renderer}
}

// Name identifica el canal en los logs.
func (s *SMTPSender) Name() string { return "smtp" }

// Send arma el mensaje y lo envía. gomail no acepta contexto: el envío corre aparte y se abandona si vence ctx.
func (s *SMTPSender) Send(ctx context.Context, req entity.Request) error {
	m, err := s.BuildMessage(ctx, req)
	if err != nil {
		return err
	}
	errc := make(chan error, 1)
	go func() { errc <- s.transport.DialAndSend(m) }()
	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("smtp: enviar solicitud %d: %w", req.ID, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp: enviar solicitud %d: %w", req.ID, ctx.Err())
	}
}

// BuildMessage arma el correo: texto plano, alternativa HTML y, si hay renderer, la hoja PDF adjunta.
func (s *SMTPSender) BuildMessage(ctx context.Context, req entity.Request) (*gomail.Message, error) {
	view := newRequestView(req)
	var plain, html bytes.Buffer
	if err := plainTmpl.Execute(&plain, view); err != nil {
		return nil, fmt.Errorf("smtp: plantilla texto: %w", err)
	}
	if err := htmlTmpl.Execute(&html, view); err != nil {
		return nil, fmt.Errorf("smtp: plantilla html: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to...)
	m.SetHeader("Subject", Subject(req))
	m.SetBody("text/plain", plain.String())
	m.AddAlternative("text/html", html.String())

	if s.renderer != nil {
		pdf, err := s.renderer.RenderRequestSheet(ctx, &req, nil)
		if err != nil {
			return nil, fmt.Errorf("smtp: adjuntar hoja: %w", err)
		}
		m.Attach(fmt.Sprintf("solicitud-%d.pdf", req.ID), gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(pdf)
			return err
		}))
	}
	return m, nil
}

// Subject asunto del correo de una solicitud nueva.
func Subject(req entity.Request) string {
	return fmt.Sprintf("Nueva solicitud de merchandising #%d - %s (%s)", req.ID, req.Requester, req.BusinessUnit)
}

type productLine struct {
	Key     string
	PerPack int64
	Total   int64
}

type requestView struct {
	entity.Request
	Lines []productLine
}

func newRequestView(req entity.Request) requestView {
	totals, _ := req.RequestedTotals()
	v := requestView{Request: req}
	for _, k := range req.Products.Keys() {
		v.Lines = append(v.Lines, productLine{Key: k, PerPack: req.Products[k], Total: totals[k]})
	}
	return v
}

var plainTmpl = texttemplate.Must(texttemplate.New("plain").Parse(
	`Se registró la solicitud #{{.ID}}.

Solicitante:  {{.Requester}}
Grupo:        {{.BusinessUnit}}
RUC:          {{.TaxID}}
Fecha visita: {{.VisitDate}}
Packs:        {{.PackCount}}
{{- if .Catalogs}}
Catálogos:    {{.Catalogs}}
{{- end}}

Productos:
{{- range .Lines}}
  - {{.Key}}: {{.PerPack}} por pack, {{.Total}} en total
{{- else}}
  (sin productos)
{{- end}}
`))

var htmlTmpl = htmltemplate.Must(htmltemplate.New("html").Parse(`<html><body>
<h2>Nueva solicitud de merchandising #{{.ID}}</h2>
<table cellpadding="4">
<tr><td><b>Solicitante</b></td><td>{{.Requester}}</td></tr>
<tr><td><b>Grupo</b></td><td>{{.BusinessUnit}}</td></tr>
<tr><td><b>RUC</b></td><td>{{.TaxID}}</td></tr>
<tr><td><b>Fecha de visita</b></td><td>{{.VisitDate}}</td></tr>
<tr><td><b>Packs</b></td><td>{{.PackCount}}</td></tr>
{{if .Catalogs}}<tr><td><b>Catálogos</b></td><td>{{.Catalogs}}</td></tr>{{end}}
</table>
<h3>Productos</h3>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Producto</th><th>Por pack</th><th>Total</th></tr>
{{range .Lines}}<tr><td>{{.Key}}</td><td>{{.PerPack}}</td><td>{{.Total}}</td></tr>
{{else}}<tr><td colspan="3">Sin productos</td></tr>
{{end}}</table>
</body></html>`))
