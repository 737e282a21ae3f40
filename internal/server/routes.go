package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"git.appkode.ru/pub/go/failure"

	"github.com/junipr-dev/dealscout/internal/domain"
	"github.com/junipr-dev/dealscout/pkg/errcodes"
	"github.com/junipr-dev/dealscout/pkg/httpx/reply"
	"github.com/junipr-dev/dealscout/pkg/rest"
)

func (s Server) RegisterRoutes(r chi.Router) { //nolint:funlen
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Route("/deals", func(r chi.Router) {
				r.Get("/", handler(s.getV1Deals))
				r.Get("/{id}", handler(s.getV1Deal))
				r.Post("/{id}/dismiss", handler(s.postV1DealDismiss))
				r.Put("/{id}/condition", handler(s.putV1DealCondition))
				r.Put("/{id}/market-value", handler(s.putV1DealMarketValue))
				r.Post("/{id}/purchase", handler(s.postV1DealPurchase))
				r.Post("/{id}/repair-quote", handler(s.postV1DealRepairQuote))
			})

			r.Route("/flips", func(r chi.Router) {
				r.Get("/", handler(s.getV1Flips))
				r.Post("/", handler(s.postV1Flips))
				r.Put("/{id}", handler(s.putV1Flip))
				r.Post("/{id}/sell", handler(s.postV1FlipSell))
				r.Delete("/{id}", handler(s.deleteV1Flip))
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", handler(s.getV1Settings))
				r.Put("/", handler(s.putV1Settings))
			})

			r.Get("/stats", handler(s.getV1Stats))

			r.Route("/ebay", func(r chi.Router) {
				r.Get("/status", handler(s.getV1EbayStatus))
				r.Post("/refresh", handler(s.postV1EbayRefresh))
				r.Delete("/link", handler(s.deleteV1EbayLink))
			})

			r.Post("/device-tokens", handler(s.postV1DeviceTokens))

			r.Route("/scanner", func(r chi.Router) {
				r.Get("/status", handler(s.getV1ScannerStatus))
				r.Put("/filter", handler(s.putV1ScannerFilter))
				r.Post("/start", handler(s.postV1ScannerStart))
				r.Post("/stop", handler(s.postV1ScannerStop))
			})

			r.Get("/location/check", handler(s.getV1LocationCheck))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			writeError(w, r, err)
		}
	}
}

// writeError maps domain error codes to HTTP statuses; everything else goes
// through the generic failure-class mapping.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		reply.Error(ctx, w, err)
		return
	}

	reply.JSON(ctx, w, statusForCode(appErr.Code), rest.Error{
		Code:    appErr.Code.String(),
		Message: appErr.Message,
	})
}

func statusForCode(code failure.ErrorCode) int {
	switch code {
	case errcodes.NotFound, errcodes.DealNotFound, errcodes.FlipNotFound:
		return http.StatusNotFound
	case errcodes.ValidationError, errcodes.InvalidDealID, errcodes.InvalidFlipID,
		errcodes.InvalidCondition, errcodes.InvalidMarketValue, errcodes.InvalidLocationFilter,
		errcodes.InvalidSellData, errcodes.InvalidSettings, errcodes.InvalidDeviceToken,
		errcodes.UnknownRepairOption, errcodes.UnknownPlatform:
		return http.StatusBadRequest
	case errcodes.DealAlreadyBought, errcodes.FlipAlreadySold:
		return http.StatusConflict
	case errcodes.ProfitUndefined, errcodes.NotPurchaseEligible, errcodes.ManualListingRequired:
		return http.StatusUnprocessableEntity
	case errcodes.EbayNotLinked:
		return http.StatusConflict
	case errcodes.TimeoutExceeded:
		return http.StatusGatewayTimeout
	case errcodes.BackendUnavailable, errcodes.BackendError:
		return http.StatusBadGateway
	case errcodes.Forbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
