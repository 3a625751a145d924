// Package protocol defines the tagged messages exchanged between the core
// and a panel front end. Every message travels as {"command", "data"}.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/lumipallolabs/imagedive/internal/config"
	"github.com/lumipallolabs/imagedive/internal/grouper"
	"github.com/lumipallolabs/imagedive/internal/model"
)

// Command names on the wire
const (
	CmdInitComplete    = "init_complete"
	CmdPostConfig      = "post_config"
	CmdRefreshImages   = "refresh_images"
	CmdCopyToClipboard = "copy_To_clipboard"
	CmdOpenImageFile   = "open_image_file"
	CmdRevealImage     = "reveal_image"
	CmdToggleGroup     = "toggle_group"

	CmdPostImageData = "post_image_data"
	CmdPostGroups    = "post_groups"
	CmdReveal        = "reveal"
	CmdError         = "error"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidTarget  = errors.New("invalid copy target")
)

// Envelope is the framing shared by both directions
type Envelope struct {
	Command string          `json:"command"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// CopyTarget selects what a copy request puts on the clipboard
type CopyTarget string

const (
	CopyName         CopyTarget = "name"
	CopyRelativePath CopyTarget = "relative"
	CopyFullPath     CopyTarget = "full"
)

// MenuContext names the image an action applies to
type MenuContext struct {
	ImageURI string     `json:"imageUri"`
	Target   CopyTarget `json:"target,omitempty"`
}

// ClientMessage is a message sent by the panel
type ClientMessage interface {
	Command() string
	isClient()
}

// InitComplete is sent once the panel is ready for config and images
type InitComplete struct{}

// ConfigChanged carries settings edited in the panel
type ConfigChanged struct {
	Settings config.Settings
}

// RefreshImages asks for a rescan
type RefreshImages struct{}

// CopyToClipboard asks to copy the name or path of an image
type CopyToClipboard struct {
	Context MenuContext
}

// OpenImageFile asks to open an image in the default application
type OpenImageFile struct {
	Context MenuContext
}

// RevealImage asks to show an image in the file manager
type RevealImage struct {
	Context MenuContext
}

// ToggleGroup asks to collapse or expand a project or group by its key
type ToggleGroup struct {
	Key string `json:"key"`
}

func (InitComplete) Command() string    { return CmdInitComplete }
func (ConfigChanged) Command() string   { return CmdPostConfig }
func (RefreshImages) Command() string   { return CmdRefreshImages }
func (CopyToClipboard) Command() string { return CmdCopyToClipboard }
func (OpenImageFile) Command() string   { return CmdOpenImageFile }
func (RevealImage) Command() string     { return CmdRevealImage }
func (ToggleGroup) Command() string     { return CmdToggleGroup }

func (InitComplete) isClient()    {}
func (ConfigChanged) isClient()   {}
func (RefreshImages) isClient()   {}
func (CopyToClipboard) isClient() {}
func (OpenImageFile) isClient()   {}
func (RevealImage) isClient()     {}
func (ToggleGroup) isClient()     {}

// ServerMessage is a message sent to the panel
type ServerMessage interface {
	Command() string
	isServer()
}

// PostConfig sends the current settings
type PostConfig struct {
	Settings config.Settings
}

// PostImageData sends a scan result
type PostImageData struct {
	Collection model.ProjectDirCollection
}

// GroupView is one directory group of a folded collection
type GroupView struct {
	Key      string            `json:"key"`
	Title    string            `json:"title"`
	Expanded bool              `json:"expanded"`
	IsNew    bool              `json:"isNew,omitempty"`
	Images   []model.ImageFile `json:"imgs"`
}

// ProjectView is one root of a folded collection
type ProjectView struct {
	Key      string      `json:"key"`
	Title    string      `json:"title"`
	Expanded bool        `json:"expanded"`
	IsNew    bool        `json:"isNew,omitempty"`
	Groups   []GroupView `json:"groups"`
}

// PostGroups sends the collection folded into groups, in display order,
// with the expansion the core remembers
type PostGroups struct {
	CommonBase string        `json:"commonBase"`
	Projects   []ProjectView `json:"projects"`
}

// KeyID is the wire form of a group key
func KeyID(k grouper.Key) string {
	return strconv.FormatUint(k.ID(), 16)
}

// NewPostGroups converts a folded tree for the panel
func NewPostGroups(t *grouper.Tree) PostGroups {
	out := PostGroups{Projects: []ProjectView{}}
	if t == nil {
		return out
	}
	out.CommonBase = t.CommonBase
	for _, p := range t.Projects {
		pv := ProjectView{
			Key:      KeyID(p.Key),
			Title:    p.Title,
			Expanded: p.Expanded,
			IsNew:    p.IsNew,
			Groups:   make([]GroupView, 0, len(p.Groups)),
		}
		for _, g := range p.Groups {
			pv.Groups = append(pv.Groups, GroupView{
				Key:      KeyID(g.Key),
				Title:    g.Title,
				Expanded: g.Expanded,
				IsNew:    g.IsNew,
				Images:   g.Images,
			})
		}
		out.Projects = append(out.Projects, pv)
	}
	return out
}

// Reveal asks an already open panel to come to the front
type Reveal struct{}

// Error reports a failed request
type Error struct {
	Message string `json:"message"`
}

func (PostConfig) Command() string    { return CmdPostConfig }
func (PostImageData) Command() string { return CmdPostImageData }
func (PostGroups) Command() string    { return CmdPostGroups }
func (Reveal) Command() string        { return CmdReveal }
func (Error) Command() string         { return CmdError }

func (PostConfig) isServer()    {}
func (PostImageData) isServer() {}
func (PostGroups) isServer()    {}
func (Reveal) isServer()        {}
func (Error) isServer()         {}

// payload returns the value marshaled as data, nil for bare commands
func payload(msg any) any {
	switch m := msg.(type) {
	case ConfigChanged:
		return m.Settings
	case CopyToClipboard:
		return m.Context
	case OpenImageFile:
		return m.Context
	case RevealImage:
		return m.Context
	case ToggleGroup:
		return m
	case PostConfig:
		return m.Settings
	case PostImageData:
		return m.Collection
	case PostGroups:
		return m
	case Error:
		return m
	default:
		return nil
	}
}

func encode(command string, msg any) ([]byte, error) {
	env := Envelope{Command: command}
	if data := payload(msg); data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", command, err)
		}
		env.Data = raw
	}
	return json.Marshal(env)
}

// EncodeClient frames a client message
func EncodeClient(msg ClientMessage) ([]byte, error) {
	return encode(msg.Command(), msg)
}

// EncodeServer frames a server message
func EncodeServer(msg ServerMessage) ([]byte, error) {
	return encode(msg.Command(), msg)
}

func decodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("decode envelope: %w", err)
	}
	return env, nil
}

func decodeData(env Envelope, v any) error {
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fmt.Errorf("%s: missing data", env.Command)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("decode %s: %w", env.Command, err)
	}
	return nil
}

func decodeContext(env Envelope) (MenuContext, error) {
	var ctx MenuContext
	if err := decodeData(env, &ctx); err != nil {
		return ctx, err
	}
	if ctx.ImageURI == "" {
		return ctx, fmt.Errorf("%s: missing imageUri", env.Command)
	}
	return ctx, nil
}

// DecodeClient parses a message sent by the panel
func DecodeClient(data []byte) (ClientMessage, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}

	switch env.Command {
	case CmdInitComplete:
		return InitComplete{}, nil
	case CmdRefreshImages:
		return RefreshImages{}, nil
	case CmdPostConfig:
		var s config.Settings
		if err := decodeData(env, &s); err != nil {
			return nil, err
		}
		return ConfigChanged{Settings: s}, nil
	case CmdCopyToClipboard:
		ctx, err := decodeContext(env)
		if err != nil {
			return nil, err
		}
		switch ctx.Target {
		case "":
			ctx.Target = CopyName
		case CopyName, CopyRelativePath, CopyFullPath:
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidTarget, ctx.Target)
		}
		return CopyToClipboard{Context: ctx}, nil
	case CmdOpenImageFile:
		ctx, err := decodeContext(env)
		if err != nil {
			return nil, err
		}
		return OpenImageFile{Context: ctx}, nil
	case CmdRevealImage:
		ctx, err := decodeContext(env)
		if err != nil {
			return nil, err
		}
		return RevealImage{Context: ctx}, nil
	case CmdToggleGroup:
		var tg ToggleGroup
		if err := decodeData(env, &tg); err != nil {
			return nil, err
		}
		if tg.Key == "" {
			return nil, fmt.Errorf("%s: missing key", env.Command)
		}
		return tg, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, env.Command)
	}
}

// DecodeServer parses a message sent to the panel
func DecodeServer(data []byte) (ServerMessage, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}

	switch env.Command {
	case CmdPostConfig:
		var s config.Settings
		if err := decodeData(env, &s); err != nil {
			return nil, err
		}
		return PostConfig{Settings: s}, nil
	case CmdPostImageData:
		var c model.ProjectDirCollection
		if err := decodeData(env, &c); err != nil {
			return nil, err
		}
		return PostImageData{Collection: c}, nil
	case CmdPostGroups:
		var g PostGroups
		if err := decodeData(env, &g); err != nil {
			return nil, err
		}
		return g, nil
	case CmdReveal:
		return Reveal{}, nil
	case CmdError:
		var e Error
		if err := decodeData(env, &e); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, env.Command)
	}
}
