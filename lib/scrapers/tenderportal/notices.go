package tenderportal

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tenderportal-backend/lib/htmlutil"
	"tenderportal-backend/lib/locale"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type DynamicPurchasingSystem struct {
	Id       int
	CustomId string
	Unit     string
	Title    string
	// full description as rendered, correction marker included
	ShortDescription string
	// description with the correction marker text removed, only populated
	// while the DPS is being corrected
	AdditionalDesc   string
	IsBeingCorrected bool
	// Deadline and OriginalDeadline are either both set or both empty
	Deadline         *time.Time
	OriginalDeadline string
}

type Notice struct {
	Id               int
	CustomId         string
	Unit             string
	Flags            []string
	Title            string
	Types            []string
	ShortDescription string
	IsBeingCorrected bool
	Deadline         *time.Time
	OriginalDeadline string
}

// Notices is a per-company, per-language snapshot of the notices page.
type Notices struct {
	DynamicPurchasingSystems []DynamicPurchasingSystem
	Notices                  []Notice
	Language                 locale.Language
}

// Cell layout per row type. The index is the only schema the markup offers;
// it lives here so a markup reshuffle is a one-table edit instead of a hunt
// through the extractors.
var dpsRowCells = struct {
	unit, customId, title, description, deadline int
}{0, 1, 2, 3, 4}

var noticeRowCells = struct {
	unit, customId, flags, title, types, description, deadline int
}{0, 1, 2, 3, 4, 5, 6}

func noticeIdFromAnchor(anchor *goquery.Selection) (int, error) {
	href := anchor.AttrOr("href", "")
	raw := queryParam(href, "noticeId")
	if raw == "" {
		return 0, fmt.Errorf("%w: notice link %q carries no id", ErrRequiredField, href)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: could not parse notice id from %q", ErrRequiredField, href)
	}
	return id, nil
}

// the rendered title redundantly repeats the unit name in front of the
// actual title
func stripUnitPrefix(title, unit string) string {
	return strings.TrimPrefix(title, unit+" / ")
}

// correctionInfo reads the short-description cell. A nested marker span
// flags an in-progress correction; its own text is portal chrome, not
// description content.
func correctionInfo(cell *goquery.Selection) (short string, additional string, corrected bool) {
	short = htmlutil.CleanText(cell.Text())

	marker := cell.Find("span.correction")
	if marker.Length() == 0 {
		return short, "", false
	}
	markerText := htmlutil.CleanText(marker.Text())
	additional = strings.TrimSpace(strings.Replace(short, markerText, "", 1))
	return short, additional, true
}

func parseDeadline(raw string, lang locale.Language) (*time.Time, string, error) {
	raw = htmlutil.CleanText(raw)
	if raw == "" {
		return nil, "", nil
	}
	parsed, err := locale.ParseDate(raw, lang)
	if err != nil {
		return nil, "", err
	}
	return &parsed, raw, nil
}

func dpsFromRow(row *goquery.Selection, lang locale.Language) (DynamicPurchasingSystem, error) {
	anchor := htmlutil.Cell(row, dpsRowCells.title).Find("a")
	id, err := noticeIdFromAnchor(anchor)
	if err != nil {
		return DynamicPurchasingSystem{}, err
	}

	unit := htmlutil.CellText(row, dpsRowCells.unit)
	short, additional, corrected := correctionInfo(htmlutil.Cell(row, dpsRowCells.description))
	deadline, rawDeadline, err := parseDeadline(
		htmlutil.CellText(row, dpsRowCells.deadline), lang,
	)
	if err != nil {
		return DynamicPurchasingSystem{}, err
	}

	return DynamicPurchasingSystem{
		Id:               id,
		CustomId:         htmlutil.CellText(row, dpsRowCells.customId),
		Unit:             unit,
		Title:            stripUnitPrefix(htmlutil.CleanText(anchor.Text()), unit),
		ShortDescription: short,
		AdditionalDesc:   additional,
		IsBeingCorrected: corrected,
		Deadline:         deadline,
		OriginalDeadline: rawDeadline,
	}, nil
}

func noticeFromRow(row *goquery.Selection, lang locale.Language) (Notice, error) {
	anchor := htmlutil.Cell(row, noticeRowCells.title).Find("a")
	id, err := noticeIdFromAnchor(anchor)
	if err != nil {
		return Notice{}, err
	}

	var flags []string
	icons := htmlutil.Cell(row, noticeRowCells.flags).Find("img")
	for i := range icons.Nodes {
		flag, err := DecodeFlag(icons.Eq(i).AttrOr("src", ""))
		if err != nil {
			return Notice{}, err
		}
		flags = append(flags, flag)
	}

	var types []string
	tags := htmlutil.Cell(row, noticeRowCells.types).Find("span")
	for i := range tags.Nodes {
		types = append(types, htmlutil.CleanText(tags.Eq(i).Text()))
	}

	unit := htmlutil.CellText(row, noticeRowCells.unit)
	short, _, corrected := correctionInfo(htmlutil.Cell(row, noticeRowCells.description))
	deadline, rawDeadline, err := parseDeadline(
		htmlutil.CellText(row, noticeRowCells.deadline), lang,
	)
	if err != nil {
		return Notice{}, err
	}

	return Notice{
		Id:               id,
		CustomId:         htmlutil.CellText(row, noticeRowCells.customId),
		Unit:             unit,
		Flags:            flags,
		Title:            stripUnitPrefix(htmlutil.CleanText(anchor.Text()), unit),
		Types:            types,
		ShortDescription: short,
		IsBeingCorrected: corrected,
		Deadline:         deadline,
		OriginalDeadline: rawDeadline,
	}, nil
}

// Notices fetches and extracts the notices page: the dynamic purchasing
// system table and the notice table are independent collections on the same
// page. One malformed row aborts the whole listing; partially extracted
// procurement data is worse than a visible failure.
func (c *Client) Notices(ctx context.Context, companyId int, session Session) (Notices, error) {
	ctx, span := tracer.Start(ctx, "client:Notices")
	defer span.End()
	span.SetAttributes(attribute.Int("company_id", companyId))

	res, err := c.Http.R().
		SetContext(ctx).
		SetCookies(session.cookies()).
		SetQueryParam("pId", strconv.Itoa(companyId)).
		Get(noticesPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch notices page")
		return Notices{}, err
	}
	if err := expectOK(res, "notices page"); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "notices page did not render")
		return Notices{}, err
	}

	doc, err := document(res)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return Notices{}, err
	}

	lang, err := locale.Match(doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to detect page locale")
		return Notices{}, err
	}

	out := Notices{Language: lang}

	doc.Find("table#dpsGrid tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if row.Find("td").Length() == 0 {
			// header row
			return true
		}
		var dps DynamicPurchasingSystem
		dps, err = dpsFromRow(row, lang)
		if err != nil {
			return false
		}
		out.DynamicPurchasingSystems = append(out.DynamicPurchasingSystems, dps)
		return true
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed dps row")
		return Notices{}, err
	}

	doc.Find("table#noticeGrid tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if row.Find("td").Length() == 0 {
			return true
		}
		var notice Notice
		notice, err = noticeFromRow(row, lang)
		if err != nil {
			return false
		}
		out.Notices = append(out.Notices, notice)
		return true
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed notice row")
		return Notices{}, err
	}

	span.SetAttributes(
		attribute.Int("dps_count", len(out.DynamicPurchasingSystems)),
		attribute.Int("notice_count", len(out.Notices)),
	)
	return out, nil
}
