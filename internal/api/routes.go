package api

import (
	"context"
	"net/http"

	"github.com/PurpleSec/routex"
	"github.com/PurpleSec/routex/val"

	"deskagent/internal/command"
)

var (
	valMove = val.Set{
		val.Validator{Name: "x", Type: val.Int},
		val.Validator{Name: "y", Type: val.Int},
	}
	valButton = val.Set{val.Validator{Name: "button", Type: val.String, Rules: val.Rules{val.NoEmpty}}}
	valScroll = val.Set{
		val.Validator{Name: "deltaX", Type: val.Int, Optional: true},
		val.Validator{Name: "deltaY", Type: val.Int, Optional: true},
	}
	valText = val.Set{val.Validator{Name: "text", Type: val.String}}
	valKey  = val.Set{
		val.Validator{Name: "key", Type: val.String, Rules: val.Rules{val.NoEmpty}},
		val.Validator{Name: "modifiers", Type: val.ListString, Optional: true},
	}
)

func (s *Server) httpMouseMove(_ context.Context, w http.ResponseWriter, r *routex.Request, v interface{}) {
	a, ok := v.(*command.MoveArgs)
	if v == nil || a == nil || !ok {
		writeError(http.StatusBadRequest, errBadBody.Error(), w, r)
		return
	}
	s.reply(command.MoveMouse, nil, s.surface.MoveMouse(a.X, a.Y), w)
}

func (s *Server) httpMouseButton(_ context.Context, w http.ResponseWriter, r *routex.Request, v interface{}) {
	a, ok := v.(*command.ButtonArgs)
	if v == nil || a == nil || !ok {
		writeError(http.StatusBadRequest, errBadBody.Error(), w, r)
		return
	}
	switch r.Values.StringDefault("action", "") {
	case "down":
		s.reply(command.MouseDown, nil, s.surface.MouseDown(a.Button), w)
	case "up":
		s.reply(command.MouseUp, nil, s.surface.MouseUp(a.Button), w)
	default:
		s.reply(command.ClickMouse, nil, s.surface.ClickMouse(a.Button), w)
	}
}

func (s *Server) httpMouseScroll(_ context.Context, w http.ResponseWriter, r *routex.Request, v interface{}) {
	a, ok := v.(*command.ScrollArgs)
	if v == nil || a == nil || !ok {
		writeError(http.StatusBadRequest, errBadBody.Error(), w, r)
		return
	}
	s.reply(command.ScrollWheel, nil, s.surface.ScrollWheel(a.DeltaX, a.DeltaY), w)
}

func (s *Server) httpKeyboardType(_ context.Context, w http.ResponseWriter, r *routex.Request, v interface{}) {
	a, ok := v.(*command.TextArgs)
	if v == nil || a == nil || !ok {
		writeError(http.StatusBadRequest, errBadBody.Error(), w, r)
		return
	}
	s.reply(command.TypeText, nil, s.surface.TypeText(a.Text), w)
}

func (s *Server) httpKeyboardKey(_ context.Context, w http.ResponseWriter, r *routex.Request, v interface{}) {
	a, ok := v.(*command.KeyArgs)
	if v == nil || a == nil || !ok {
		writeError(http.StatusBadRequest, errBadBody.Error(), w, r)
		return
	}
	s.reply(command.PressKey, nil, s.surface.PressKey(a.Key, a.Modifiers), w)
}
