package tenderportal

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// TenderID looks up the id of the company's in-progress tender from the
// modify link on the tenders page. A page without that link simply means no
// tender is underway, which is not a transport failure.
func (c *Client) TenderID(ctx context.Context, companyId int, session AuthenticatedSession) (string, error) {
	ctx, span := tracer.Start(ctx, "client:TenderID")
	defer span.End()
	span.SetAttributes(attribute.Int("company_id", companyId))

	res, err := c.Http.R().
		SetContext(ctx).
		SetCookies(session.cookies()).
		SetQueryParam("pId", strconv.Itoa(companyId)).
		Get(tendersPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch tenders page")
		return "", err
	}
	if err := expectOK(res, "tenders page"); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "tenders page did not render")
		return "", err
	}

	doc, err := document(res)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return "", err
	}

	anchor := doc.Find(`a[href*="tarjID="]`).First()
	if anchor.Length() == 0 {
		return "", ErrNoTenderInProgress
	}

	href := anchor.AttrOr("href", "")
	tenderId := queryParam(href, "tarjID")
	if tenderId == "" {
		err := fmt.Errorf("%w: modify link %q carries no tender id", ErrRequiredField, href)
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed modify link")
		return "", err
	}
	return tenderId, nil
}

// RemoveTender posts the removal request. This endpoint renders its failures
// into the page body with a 200, so the body is inspected for the error
// marker even when the HTTP exchange looks fine.
func (c *Client) RemoveTender(ctx context.Context, companyId int, tenderId string, session AuthenticatedSession) error {
	ctx, span := tracer.Start(ctx, "client:RemoveTender")
	defer span.End()
	span.SetAttributes(
		attribute.Int("company_id", companyId),
		attribute.String("tender_id", tenderId),
	)

	res, err := c.Http.R().
		SetContext(ctx).
		SetCookies(session.cookies()).
		SetFormData(map[string]string{
			"pId":    strconv.Itoa(companyId),
			"tarjID": tenderId,
		}).
		Post(removePath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "removal request failed")
		return err
	}
	if err := expectOK(res, "tender removal"); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "removal not acknowledged")
		return err
	}

	doc, err := document(res)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return err
	}
	if doc.Find("#removalError").Length() > 0 {
		err := fmt.Errorf("%w: tender %s", ErrTenderRemoval, tenderId)
		span.RecordError(err)
		span.SetStatus(codes.Error, "portal flagged the removal as failed")
		return err
	}

	return nil
}
