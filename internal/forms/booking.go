package forms

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/chungli-bot/house-linebot-go/internal/bot/listing"
	apperrors "github.com/chungli-bot/house-linebot-go/internal/errors"
	"github.com/chungli-bot/house-linebot-go/internal/housing"
	"github.com/chungli-bot/house-linebot-go/internal/lineutil"
)

type bookingRequest struct {
	UserID      string `json:"userId" form:"userId"`
	DisplayName string `json:"displayName" form:"displayName"`
	Name        string `json:"name" form:"name"`
	Phone       string `json:"phone" form:"phone"`
	Timeslot    string `json:"timeslot" form:"timeslot"`
	HouseID     string `json:"houseId" form:"houseId"`
	HouseTitle  string `json:"houseTitle" form:"houseTitle"`
}

// validate reports the first missing required field, checked in a fixed
// order so the 400 message is deterministic.
func (r bookingRequest) validate() *apperrors.ValidationError {
	switch {
	case r.UserID == "":
		return apperrors.NewValidationError("userId", "is required")
	case r.HouseID == "":
		return apperrors.NewValidationError("houseId", "is required")
	case r.Name == "":
		return apperrors.NewValidationError("name", "is required")
	case r.Phone == "":
		return apperrors.NewValidationError("phone", "is required")
	case r.Timeslot == "":
		return apperrors.NewValidationError("timeslot", "is required")
	}
	return nil
}

// SubmitBooking records a viewing booking, confirms it to the requester,
// and notifies the agent. Push failures are logged but do not fail the
// response once the booking is stored.
func (h *Handlers) SubmitBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respond(c, "booking", http.StatusBadRequest, statusResponse{Status: "error", Message: "invalid payload"})
		return
	}
	if vErr := req.validate(); vErr != nil {
		h.logger.WithError(vErr).Warn("Booking rejected")
		h.respond(c, "booking", http.StatusBadRequest, statusResponse{Status: "error", Message: "missing " + vErr.Field})
		return
	}

	log := h.logger.WithField("user_id", req.UserID).WithField("house_id", req.HouseID)

	timeslotCN := housing.TimeslotLabel(req.Timeslot)
	bookingID, err := h.store.AddBooking(c.Request.Context(), &housing.Booking{
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		Name:        req.Name,
		Phone:       req.Phone,
		Timeslot:    req.Timeslot,
		TimeslotCN:  timeslotCN,
		HouseID:     req.HouseID,
		HouseTitle:  req.HouseTitle,
	})
	if err != nil {
		log.WithError(err).Error("Failed to store booking")
		h.respond(c, "booking", http.StatusInternalServerError, statusResponse{Status: "error", Message: err.Error()})
		return
	}
	log = log.WithField("booking_id", bookingID)

	card := listing.BookingConfirmCard(req.HouseTitle, req.Name, req.Phone, timeslotCN)
	if _, err := h.client.PushMessage(&messaging_api.PushMessageRequest{
		To:       req.UserID,
		Messages: []messaging_api.MessageInterface{lineutil.NewFlexMessage("預約成功！", card.FlexBubble)},
	}, ""); err != nil {
		log.WithError(err).Error("Failed to push booking confirmation")
	}

	if h.cfg.AgentUserID == "" {
		log.Warn("AGENT_LINE_USER_ID not configured, skipping agent notification")
	} else {
		house := req.HouseTitle
		if house == "" {
			house = req.HouseID
		}
		text := fmt.Sprintf("📢 有人預約囉！\n\n🏠 物件：%s\n👤 姓名：%s\n📞 電話：%s\n🕒 時段：%s",
			house, req.Name, req.Phone, timeslotCN)
		if _, err := h.client.PushMessage(&messaging_api.PushMessageRequest{
			To:       h.cfg.AgentUserID,
			Messages: []messaging_api.MessageInterface{lineutil.NewTextMessage(text)},
		}, ""); err != nil {
			log.WithError(err).Error("Failed to notify agent")
		}
	}

	log.Info("Booking stored")
	h.respond(c, "booking", http.StatusOK, statusResponse{Status: "success"})
}
