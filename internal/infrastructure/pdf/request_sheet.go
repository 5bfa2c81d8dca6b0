// Package pdf genera la hoja de despacho de una solicitud de merchandising con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Grupo + título      │  N° Solicitud + Fecha        │
//	│  SOLICITANTE: nombre / RUC / fecha de visita / packs        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Por pack | Solicitado | Aprobado         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONFIRMACIÓN: responsable + observaciones, o "pendiente"   │
//	│  FOOTER: QR con la referencia + firmas                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/kossodo/merch-api/internal/domain/entity"
	"github.com/kossodo/merch-api/internal/domain/inventory"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// RequestSheetRenderer implementa request.SheetRenderer.
type RequestSheetRenderer struct{}

// NewRequestSheetRenderer construye el renderer.
func NewRequestSheetRenderer() *RequestSheetRenderer { return &RequestSheetRenderer{} }

// RenderRequestSheet genera el PDF de la solicitud. conf es nil mientras la solicitud está pendiente.
func (g *RequestSheetRenderer) RenderRequestSheet(_ context.Context, req *entity.Request, conf *entity.Confirmation) ([]byte, error) {
	if req == nil {
		return nil, fmt.Errorf("pdf: solicitud nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Solicitud de merchandising %d", req.ID), true).
		WithAuthor(string(req.BusinessUnit), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(req))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(requesterRow(req))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(productRows(req, conf)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(confirmationRow(conf))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(req))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(req *entity.Request) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(strings.ToUpper(string(req.BusinessUnit)), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Solicitud de merchandising", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("N° %d", req.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Registrada: "+req.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Estado: "+req.Status, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func requesterRow(req *entity.Request) core.Row {
	return row.New(20).Add(
		col.New(12).Add(
			text.New("SOLICITANTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(req.Requester, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("RUC: %s   |   Fecha de visita: %s   |   Packs: %d",
				req.TaxID, req.VisitDate, req.PackCount,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New("Catálogos: "+nonEmpty(req.Catalogs, "-"), props.Text{
				Size: 8, Top: 16, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 6, align.Left),
		h("Por pack", 2, align.Center),
		h("Solicitado", 2, align.Right),
		h("Aprobado", 2, align.Right),
	)
}

// productRows une lo pedido con lo aprobado; un producto aprobado fuera de la solicitud también aparece.
func productRows(req *entity.Request, conf *entity.Confirmation) []core.Row {
	requested, _ := req.RequestedTotals()
	keys := req.Products.Keys()
	if conf != nil {
		keys = inventory.MergeKeys(keys, conf.Quantities.Keys())
	}

	rows := make([]core.Row, 0, len(keys))
	for _, k := range keys {
		approved := "-"
		if conf != nil {
			approved = fmt.Sprintf("%d", conf.Quantities[k])
		}
		rows = append(rows, row.New(7).Add(
			col.New(6).Add(text.New(ProductLabel(k), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", req.Products[k]), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", requested[k]), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(approved, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, row.New(7).Add(col.New(12).Add(
			text.New("Sin productos", props.Text{Size: 8, Top: 1, Color: colorGray, Align: align.Center}),
		)))
	}
	return rows
}

func confirmationRow(conf *entity.Confirmation) core.Row {
	if conf == nil {
		return row.New(10).Add(col.New(12).Add(
			text.New("PENDIENTE DE CONFIRMACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Center, Color: colorPrimary, Top: 2,
			}),
		))
	}
	return row.New(16).Add(col.New(12).Add(
		text.New("CONFIRMACIÓN", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(fmt.Sprintf("Confirmado por %s el %s", conf.Confirmer, conf.CreatedAt.Format("02/01/2006 15:04")),
			props.Text{Size: 8, Top: 6}),
		text.New("Observaciones: "+nonEmpty(conf.Observations, "-"), props.Text{Size: 8, Top: 11, Color: colorGray}),
	))
}

func footerRow(req *entity.Request) core.Row {
	return row.New(35).Add(
		col.New(3).Add(code.NewQr(fmt.Sprintf("merch:%s:solicitud:%d", req.BusinessUnit, req.ID), props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Entregado por: ______________________", props.Text{Size: 8, Top: 8, Left: 4}),
			text.New("Recibido por:  ______________________", props.Text{Size: 8, Top: 20, Left: 4}),
		),
	)
}

// ProductLabel convierte "merch_polo_azul" en "Polo azul".
func ProductLabel(key string) string {
	s := strings.ReplaceAll(strings.TrimPrefix(key, inventory.ProductKeyPrefix), "_", " ")
	if s == "" {
		return key
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
