package ui

import "time"

// Screen names a full-page view. Exactly one screen is visible at a time.
type Screen string

const (
	ScreenLanding   Screen = "landing-screen"
	ScreenLogin     Screen = "login-screen"
	ScreenRegister  Screen = "register-screen"
	ScreenGuest     Screen = "guest-screen"
	ScreenDashboard Screen = "dashboard-screen"
)

// Screens lists every screen in display order
var Screens = []Screen{ScreenLanding, ScreenLogin, ScreenRegister, ScreenGuest, ScreenDashboard}

// ParseScreen accepts a screen id with or without the "-screen" suffix
func ParseScreen(name string) (Screen, bool) {
	for _, s := range Screens {
		if string(s) == name || string(s) == name+"-screen" {
			return s, true
		}
	}
	return "", false
}

// Region names a message area scoped to one screen
type Region string

const (
	RegionLogin    Region = "login-error"
	RegionRegister Region = "register-error"
	RegionGuest    Region = "guest-error"
	RegionConvert  Region = "convert-error"
)

// NoticeKind distinguishes error messages from success messages
type NoticeKind string

const (
	NoticeError   NoticeKind = "error"
	NoticeSuccess NoticeKind = "success"
)

// Notice is a message shown in a region
type Notice struct {
	Region  Region     `json:"region"`
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// NoticeDuration is how long a notice stays visible
const NoticeDuration = 5 * time.Second

// ConvertedMessage is shown after a guest account was converted
const ConvertedMessage = "Account converted successfully!"
