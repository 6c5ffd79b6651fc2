package render

import (
	"go.uber.org/zap"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// Interpret dispatches a button's action through the single action
// switch and returns the effect descriptor the frontend should execute.
// Navigation parameters follow the precedence target ?? targetPage ?? url.
// Unknown actions are logged and ignored (nil effect).
func (r *Renderer) Interpret(props model.Props) *model.Effect {
	switch props.Action {
	case model.ActionNavigate:
		return &model.Effect{Kind: "navigate", Page: navigationTarget(props)}
	case model.ActionURL:
		url := props.URL
		if url == "" {
			url = navigationTarget(props)
		}
		return &model.Effect{Kind: "open-url", URL: url}
	case model.ActionLogin:
		return &model.Effect{Kind: "login-demo"}
	case model.ActionRegister:
		return &model.Effect{Kind: "register-demo"}
	case model.ActionResetPassword:
		return &model.Effect{Kind: "reset-password-demo"}
	case model.ActionLogout:
		return &model.Effect{Kind: "logout-demo"}
	case model.ActionChat:
		return &model.Effect{Kind: "open-chat", Page: navigationTarget(props)}
	case model.ActionCall:
		return &model.Effect{Kind: "dial", Number: props.PhoneNumber}
	case model.ActionEmail:
		return &model.Effect{Kind: "compose-email", Email: props.EmailAddress}
	case model.ActionUploadPhoto:
		return &model.Effect{Kind: "upload-photo"}
	case model.ActionRecordAudio:
		return &model.Effect{Kind: "record-audio"}
	case model.ActionToggleTheme:
		return &model.Effect{Kind: "toggle-theme"}
	case model.ActionSupportTicket:
		return &model.Effect{Kind: "support-ticket", Target: props.SupportTarget}
	case "":
		return nil
	default:
		r.logger.Info("ignoring unknown button action",
			zap.String("action", string(props.Action)),
		)
		return nil
	}
}

// navigationTarget resolves the parameter precedence for navigation-like
// actions: target ?? targetPage ?? url.
func navigationTarget(props model.Props) string {
	if props.Target != "" {
		return props.Target
	}
	if props.TargetPage != "" {
		return props.TargetPage
	}
	return props.URL
}
