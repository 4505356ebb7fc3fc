package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/absrenew/storefront/internal/common"
	commonErrors "github.com/absrenew/storefront/internal/errors"
	commonHttp "github.com/absrenew/storefront/internal/http"
	"github.com/absrenew/storefront/internal/log"
	"github.com/absrenew/storefront/internal/middleware"
	"github.com/absrenew/storefront/shop/internal/otel"
	"github.com/absrenew/storefront/shop/internal/service"
	"github.com/absrenew/storefront/shop/pkg/request"
)

type ShopController struct {
	service *service.ShopService
}

// AttachShopController registers the inquiry and visit analytics endpoints.
// Submitting an inquiry and recording a visit are public; reading inquiries
// and answering them is for staff.
func AttachShopController(mux *mux.Router, service *service.ShopService, secretKey string) {
	controller := ShopController{service: service}
	auth := middleware.Auth(secretKey)

	inquiries := mux.PathPrefix("/inquiries").Subrouter()
	inquiries.HandleFunc("", controller.SubmitInquiry).Methods(http.MethodPost)
	inquiries.Handle("", auth(http.HandlerFunc(controller.FindInquiries))).Methods(http.MethodGet)
	inquiries.Handle("/{inquiryId}/answer", auth(http.HandlerFunc(controller.AnswerInquiry))).
		Methods(http.MethodPost)

	visits := mux.PathPrefix("/visits").Subrouter()
	visits.HandleFunc("", controller.RecordVisit).Methods(http.MethodPost)
	visits.Handle("/{date}", auth(http.HandlerFunc(controller.FindVisits))).Methods(http.MethodGet)
}

func (t ShopController) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ShopController SubmitInquiry")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopController SubmitInquiry").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.SubmitInquiry{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "submitting inquiry").Logger()
	logger.Info().Msg("submitting inquiry")
	c = logger.WithContext(c)
	inquiry, err := t.service.SubmitInquiry(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed submitting inquiry with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("submitted inquiry")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"statusCode": http.StatusCreated,
		"message":    "inquiry submitted",
		"data":       map[string]interface{}{"inquiry": inquiry},
	})
}

func (t ShopController) FindInquiries(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ShopController FindInquiries")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopController FindInquiries").
		Logger()

	if !common.IsAdminFromJwtToken(c) {
		err := commonErrors.ErrNotAdmin
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"statusCode": http.StatusForbidden,
			"message":    err.Error(),
		})
		return
	}

	logger = logger.With().Str(log.KeyProcess, "finding inquiries").Logger()
	logger.Info().Msg("finding inquiries")
	c = logger.WithContext(c)
	inquiries, err := t.service.FindInquiries(c)
	if err != nil {
		err = fmt.Errorf("failed finding inquiries with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found %d inquiries", len(inquiries))

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"statusCode": http.StatusOK,
		"message":    "inquiries found",
		"data":       map[string]interface{}{"inquiries": inquiries},
	})
}

func (t ShopController) AnswerInquiry(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ShopController AnswerInquiry")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopController AnswerInquiry").
		Logger()

	if !common.IsAdminFromJwtToken(c) {
		err := commonErrors.ErrNotAdmin
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"statusCode": http.StatusForbidden,
			"message":    err.Error(),
		})
		return
	}

	inquiryId, err := uuid.Parse(mux.Vars(r)["inquiryId"])
	if err != nil {
		err = fmt.Errorf("failed parsing inquiryId with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyInquiryID, inquiryId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.AnswerInquiry{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "answering inquiry").Logger()
	logger.Info().Msg("answering inquiry")
	c = logger.WithContext(c)
	inquiry, err := t.service.AnswerInquiry(c, inquiryId, reqBody.Answer)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, commonErrors.ErrInquiryNotFound) {
			statusCode = http.StatusNotFound
		}
		err = fmt.Errorf("failed answering inquiry with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("answered inquiry")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"statusCode": http.StatusOK,
		"message":    "inquiry answered",
		"data":       map[string]interface{}{"inquiry": inquiry},
	})
}

func (t ShopController) RecordVisit(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ShopController RecordVisit")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopController RecordVisit").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.RecordVisit{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().
		Str(log.KeyProcess, "recording visit").
		Str(log.KeyVisitPath, reqBody.Path).
		Logger()
	logger.Info().Msg("recording visit")
	c = logger.WithContext(c)
	err := t.service.RecordVisit(c, reqBody.Path)
	if err != nil {
		err = fmt.Errorf("failed recording visit with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("recorded visit")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"statusCode": http.StatusOK,
		"message":    "visit recorded",
	})
}

func (t ShopController) FindVisits(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ShopController FindVisits")
	defer span.End()

	date := mux.Vars(r)["date"]

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopController FindVisits").
		Logger()

	if !common.IsAdminFromJwtToken(c) {
		err := commonErrors.ErrNotAdmin
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"statusCode": http.StatusForbidden,
			"message":    err.Error(),
		})
		return
	}

	if _, err := time.Parse("2006-01-02", date); err != nil {
		err = fmt.Errorf("failed parsing date=%s with error=%w", date, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	logger = logger.With().Str(log.KeyProcess, "finding visits").Logger()
	logger.Info().Msg("finding visits")
	c = logger.WithContext(c)
	visits, err := t.service.FindVisits(c, date)
	if err != nil {
		err = fmt.Errorf("failed finding visits with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("found visits")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"statusCode": http.StatusOK,
		"message":    "visits found",
		"data":       map[string]interface{}{"visits": visits},
	})
}
