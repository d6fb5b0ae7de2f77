package handlers

import (
	"DentaBill/sms"

	"github.com/gin-gonic/gin"
)

type SMSHandler struct {
	client *sms.Client
}

func NewSMSHandler(client *sms.Client) *SMSHandler {
	return &SMSHandler{client: client}
}

// SendSMS dispatches one message through the SMS gateway. The response
// mirrors the gateway outcome: {success, sid} or {success: false, error}.
func (h *SMSHandler) SendSMS(c *gin.Context) {
	var body struct {
		To      string `json:"to"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.To == "" || body.Message == "" {
		c.JSON(400, gin.H{"success": false, "error": "to and message are required"})
		return
	}

	if !h.client.IsEnabled() {
		c.JSON(503, gin.H{"success": false, "error": "SMS gateway is not configured"})
		return
	}

	sid, err := h.client.SendBillSMS(c.Request.Context(), sms.ToE164(body.To), body.Message)
	if err != nil {
		c.JSON(502, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"success": true, "sid": sid})
}
