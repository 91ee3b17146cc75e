package notifsvc

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/latinacademy/academia/core"
)

type whatsAppService struct {
	gatewayURL string
	client     *http.Client
	logger     core.Logger
}

var _ core.NotificationService = (*whatsAppService)(nil)

// NewWhatsAppService sends texts through a WhatsApp HTTP gateway. The gateway
// expects GET <gatewayURL>/<phone>?text=<urlencoded body>, the same contract
// as the wa.me click-to-chat links it replaces.
func NewWhatsAppService(logger core.Logger) *whatsAppService {
	return &whatsAppService{
		gatewayURL: strings.TrimRight(core.Conf.WhatsAppGatewayURL, "/"),
		client:     &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

func (svc whatsAppService) SendMessages(messages ...*core.TextMessage) {
	for _, msg := range messages {
		msg := msg
		go func() {
			if msg.HasRecipient() && msg.HasContent() {
				svc.send(*msg)
			}
		}()
	}
}

func (svc whatsAppService) send(msg core.TextMessage) {
	reqURL := fmt.Sprintf("%s/%s?text=%s", svc.gatewayURL, cleanPhone(msg.Contact), url.QueryEscape(msg.Body))

	res, err := svc.client.Get(reqURL)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("sending text: %v", err), err)
		return
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusBadRequest {
		body, _ := ioutil.ReadAll(io.LimitReader(res.Body, 1024))
		svc.logger.Error(fmt.Sprintf("sending text - status: %d - Body: %s", res.StatusCode, body))
	}
	// todo: retries ??
}

// cleanPhone strips the separators users type into mobile fields; gateways
// want bare digits with an optional leading +.
func cleanPhone(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
