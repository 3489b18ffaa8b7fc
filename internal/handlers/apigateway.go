package handlers

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"github.com/onskyline/science-interview/pkg/lambda"
)

// HandleAPIGateway serves a function invocation. Undecodable base64 bodies
// are answered as an invalid body.
func (h *APIHandler) HandleAPIGateway(ctx context.Context, event events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	req, err := lambda.FromAPIGateway(event)
	if err != nil {
		logrus.WithError(err).WithField("request_id", event.RequestContext.RequestID).Warn("Rejected function event")
		if event.HTTPMethod != "" && event.HTTPMethod != http.MethodPost {
			return textResponse(http.StatusMethodNotAllowed, MessageMethodNotAllowed).ToAPIGateway()
		}
		return textResponse(http.StatusBadRequest, MessageInvalidBody).ToAPIGateway()
	}
	return h.Handle(ctx, req).ToAPIGateway()
}
