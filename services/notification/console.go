package notifsvc

import (
	"log"
	"sync"

	"github.com/latinacademy/academia/core"
)

var (
	SentMessages = make([]core.TextMessage, 0)
	mu           sync.Mutex
)

type consoleService struct {
	appName       string
	disableOutput bool
}

var _ core.NotificationService = (*consoleService)(nil)

func NewConsoleService() core.NotificationService {
	return &consoleService{appName: core.Conf.AppName}
}

func (svc consoleService) SendMessages(messages ...*core.TextMessage) {
	for _, msg := range messages {
		go svc.sendMessage(msg)
	}
}

func (svc consoleService) sendMessage(msg *core.TextMessage) {
	if msg.HasRecipient() && msg.HasContent() {
		if !svc.disableOutput {
			log.Printf("[%s] text to %s:\n%s\n", svc.appName, msg.Contact, msg.Body)
		}
		mu.Lock()
		SentMessages = append(SentMessages, *msg)
		mu.Unlock()
	}
}

type consoleServiceMock struct {
	consoleService
}

func NewConsoleServiceMock() core.NotificationService {
	return &consoleServiceMock{
		consoleService: consoleService{
			appName:       core.Conf.AppName,
			disableOutput: true,
		},
	}
}

func (svc *consoleServiceMock) SendMessages(messages ...*core.TextMessage) {
	for _, msg := range messages {
		// run synchronously
		svc.sendMessage(msg)
	}
}

// ClearSentMessages resets the capture buffer between tests.
func ClearSentMessages() {
	mu.Lock()
	SentMessages = SentMessages[:0]
	mu.Unlock()
}
