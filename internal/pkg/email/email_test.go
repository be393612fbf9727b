package email

import (
	"errors"
	"net/smtp"
	"testing"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedMail struct {
	addr string
	to   []string
	msg  string
}

func newTestService(t *testing.T, cfg config.SMTPConfig, failures int) (*emailServiceImpl, *[]capturedMail) {
	t.Helper()

	svc, err := NewEmailService(cfg)
	require.NoError(t, err)

	impl := svc.(*emailServiceImpl)
	impl.backoff = time.Millisecond

	var sent []capturedMail
	impl.sendMail = func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		if failures > 0 {
			failures--
			return errors.New("connection refused")
		}
		sent = append(sent, capturedMail{addr: addr, to: to, msg: string(msg)})
		return nil
	}
	return impl, &sent
}

func TestSendOTP_RendersCode(t *testing.T) {
	svc, sent := newTestService(t, config.SMTPConfig{Host: "smtp.test", Port: 587, From: "no-reply@nmep.in", FromName: "NMEP"}, 0)

	require.NoError(t, svc.SendOTP("ravi@nmep.in", "Ravi Kumar", "482913", 10*time.Minute))

	require.Len(t, *sent, 1)
	mail := (*sent)[0]
	assert.Equal(t, "smtp.test:587", mail.addr)
	assert.Equal(t, []string{"ravi@nmep.in"}, mail.to)
	assert.Contains(t, mail.msg, "Subject: Your login OTP")
	assert.Contains(t, mail.msg, "482913")
	assert.Contains(t, mail.msg, "10 minutes")
	assert.Contains(t, mail.msg, "Ravi Kumar")
}

func TestSendWelcome_EscapesHTML(t *testing.T) {
	svc, sent := newTestService(t, config.SMTPConfig{Host: "smtp.test", Port: 25}, 0)

	require.NoError(t, svc.SendWelcome("a@nmep.in", "<b>Asha</b>", "NM123456789", "Tmp#Pass1", "http://localhost:3000/login"))

	require.Len(t, *sent, 1)
	assert.Contains(t, (*sent)[0].msg, "NM123456789")
	assert.Contains(t, (*sent)[0].msg, "&lt;b&gt;Asha&lt;/b&gt;")
}

func TestSendHTML_RetriesThenSucceeds(t *testing.T) {
	svc, sent := newTestService(t, config.SMTPConfig{Host: "smtp.test", Port: 25}, 2)

	require.NoError(t, svc.SendPasswordReset("a@nmep.in", "http://localhost:3000/reset-password/abc", "10:30"))
	assert.Len(t, *sent, 1)
}

func TestSendHTML_GivesUp(t *testing.T) {
	svc, sent := newTestService(t, config.SMTPConfig{Host: "smtp.test", Port: 25}, maxRetries)

	err := svc.SendPasswordReset("a@nmep.in", "http://x", "10:30")
	assert.ErrorContains(t, err, "after 3 attempts")
	assert.Empty(t, *sent)
}

func TestSendHTML_SkipsWithoutHost(t *testing.T) {
	svc, sent := newTestService(t, config.SMTPConfig{}, 0)

	assert.NoError(t, svc.SendOTP("a@nmep.in", "", "000000", time.Minute))
	assert.Empty(t, *sent)
}
