/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package apiresponses

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	StatusRunning     = "running"
	ServiceMessage    = "Good Morning Email Cron Service"
	MessageSent       = "Email sent successfully"
	MessageSendFailed = "Failed to send email"
)

// HealthResponse is returned by GET /.
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	NextRun   string `json:"nextRun"`
	Timestamp string `json:"timestamp"`
}

// SendResponse is returned by POST /. MessageID is set on success and Error
// on failure, never both.
type SendResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// StatusResponse is returned by GET /status. Uptime is in seconds.
type StatusResponse struct {
	Uptime    float64 `json:"uptime"`
	Timestamp string  `json:"timestamp"`
	Timezone  string  `json:"timezone"`
}

// APIError represents a standardized error response for requests that do not
// reach a handler.
type APIError struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// RespondOK sends a 200 OK response with the given data.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// RespondSent reports a delivered email.
func RespondSent(c *gin.Context, messageID string) {
	c.JSON(http.StatusOK, SendResponse{
		Success:   true,
		Message:   MessageSent,
		MessageID: messageID,
	})
}

// RespondSendFailed sends a 500 Internal Server Error carrying the delivery
// error. The error text is returned to the caller verbatim.
func RespondSendFailed(c *gin.Context, sendErr string, log *zap.SugaredLogger) {
	if log != nil {
		log.Errorw(MessageSendFailed, "error", sendErr)
	}
	c.JSON(http.StatusInternalServerError, SendResponse{
		Success: false,
		Message: MessageSendFailed,
		Error:   sendErr,
	})
}

// RespondNotFoundSimple sends a 404 Not Found response with a simple message.
func RespondNotFoundSimple(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, APIError{
		Error: message,
		Code:  "NOT_FOUND",
	})
}
