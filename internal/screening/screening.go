package screening

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "http://localhost:5000"
	userAgent      = "recruitkit/screener"

	analyzePath = "/analyze"
	uploadsPath = "/uploads"
)

// Client talks to the resume analysis service. The service is an opaque
// collaborator: the client never inspects resume content itself.
type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	BaseURL    string
}

// New creates a client for the analysis service. token is optional; when set
// it is sent as a bearer token.
func New(ctx context.Context, logger *zap.Logger, token string) *Client {
	return &Client{
		ctx:     ctx,
		token:   token,
		BaseURL: defaultBaseURL,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}
