// Package ocr is a gRPC client for the OCR service.
package ocr

import (
	"context"
	"fmt"
	"time"

	grpclog "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpcretry "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/retry"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"

	ocrv1 "github.com/cp25sy5-modjot/ocr-service/gen/go/ocr"
	"github.com/cp25sy5-modjot/ocr-service/internal/pkg/logger"
)

type Client struct {
	api  ocrv1.OCRServiceClient
	conn *grpc.ClientConn
	log  zerolog.Logger
}

func New(
	ctx context.Context,
	log zerolog.Logger,
	addr string,
	timeout time.Duration,
	retriesCount int,
	opts ...grpc.DialOption,
) (*Client, error) {
	const op = "ocr.New"

	if retriesCount < 0 {
		return nil, fmt.Errorf("%s: retries must be >= 0, got %d", op, retriesCount)
	}

	log = log.With().Str("component", "ocr_client").Logger()

	retryOpts := []grpcretry.CallOption{
		grpcretry.WithCodes(codes.NotFound, codes.Aborted, codes.DeadlineExceeded, codes.Unavailable),
		grpcretry.WithMax(uint(retriesCount)),
		grpcretry.WithPerRetryTimeout(timeout),
		grpcretry.WithBackoff(grpcretry.BackoffExponential(100 * time.Millisecond)),
	}

	logOpts := []grpclog.Option{
		grpclog.WithLogOnEvents(grpclog.PayloadReceived, grpclog.PayloadSent),
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(
			grpclog.UnaryClientInterceptor(logger.InterceptorLogger(log), logOpts...),
			grpcretry.UnaryClientInterceptor(retryOpts...),
		),
	}, opts...)

	cc, err := grpc.NewClient(addr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Client{
		api:  ocrv1.NewOCRServiceClient(cc),
		conn: cc,
		log:  log,
	}, nil
}

// Recognize returns the text lines of imageData. An empty lang lets the
// server pick its default language.
func (c *Client) Recognize(ctx context.Context, imageData []byte, lang string) ([]string, error) {
	resp, err := c.api.Recognize(ctx, &ocrv1.OCRRequest{
		ImageData: imageData,
		Lang:      lang,
	})
	if err != nil {
		return nil, err
	}

	return resp.GetText(), nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}
