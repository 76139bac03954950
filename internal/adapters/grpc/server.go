package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	ocrv1 "github.com/cp25sy5-modjot/ocr-service/gen/go/ocr"
)

// RegisterOCRServer registers the OCR service and reflection.
func RegisterOCRServer(s *grpc.Server, impl ocrv1.OCRServiceServer) {
	ocrv1.RegisterOCRServiceServer(s, impl)
	reflection.Register(s)
}
