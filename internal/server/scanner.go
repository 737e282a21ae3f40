package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/junipr-dev/dealscout/internal/domain"
	"github.com/junipr-dev/dealscout/internal/domain/service/location"
	"github.com/junipr-dev/dealscout/internal/worker"
	"github.com/junipr-dev/dealscout/pkg/errcodes"
	"github.com/junipr-dev/dealscout/pkg/httpx/reply"
	"github.com/junipr-dev/dealscout/pkg/httpx/req"
	"github.com/junipr-dev/dealscout/pkg/rest"
)

type ScannerServer struct {
	scanner    *worker.DealScanner
	classifier *location.Classifier
}

func NewScannerServer(scanner *worker.DealScanner, classifier *location.Classifier) ScannerServer {
	return ScannerServer{
		scanner:    scanner,
		classifier: classifier,
	}
}

func (s ScannerServer) getV1ScannerStatus(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, newRESTScannerStatus(s.scanner.Status()))

	return nil
}

func (s ScannerServer) putV1ScannerFilter(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.ScannerFilter
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	filter, err := location.ParseFilter(request.Filter)
	if err != nil {
		return err
	}

	s.scanner.SetFilter(filter)

	reply.JSON(ctx, w, http.StatusOK, newRESTScannerStatus(s.scanner.Status()))

	return nil
}

func (s ScannerServer) postV1ScannerStart(w http.ResponseWriter, r *http.Request) error {
	if s.scanner.IsRunning() {
		reply.OK(w)
		return nil
	}

	// The scanner must outlive this request.
	if err := s.scanner.Start(context.WithoutCancel(r.Context())); err != nil {
		return fmt.Errorf("scanner.Start: %w", err)
	}

	reply.OK(w)

	return nil
}

func (s ScannerServer) postV1ScannerStop(w http.ResponseWriter, r *http.Request) error {
	s.scanner.Stop()

	reply.OK(w)

	return nil
}

// getV1LocationCheck classifies a free-text location against the home radius.
func (s ScannerServer) getV1LocationCheck(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	loc := r.URL.Query().Get("location")
	if loc == "" {
		return domain.NewError(errcodes.ValidationError, "location query parameter is required")
	}

	out := rest.DistanceCheck{Location: loc}

	if distance, ok := s.classifier.DistanceFromHome(loc); ok {
		out.DistanceMiles = &distance
		out.Local = distance <= s.classifier.RadiusMiles()
	}

	reply.JSON(ctx, w, http.StatusOK, out)

	return nil
}
