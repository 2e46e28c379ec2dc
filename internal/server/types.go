package server

import (
	"encoding/json"
)

// Server represents one runnable MCP server's launch specification.
type Server struct {
	// Name is the server's unique identifier. It is used as the map key in
	// the config document and is not serialized inside the entry itself.
	Name string `json:"-"`

	// Command is the executable used to launch the server.
	Command string `json:"command"`

	// Args are command-line arguments passed to the Command executable.
	Args []string `json:"args"`

	// unknownFields stores JSON fields not explicitly defined in this struct
	// (env, url, transport, ...). This ensures entries written by other tools
	// survive a load/save round trip untouched.
	unknownFields map[string]json.RawMessage
}

// New creates a Server with the given name, command, and args.
func New(name, command string, args []string) *Server {
	if args == nil {
		args = []string{}
	}
	return &Server{
		Name:    name,
		Command: command,
		Args:    args,
	}
}

// NewFromParts creates a Server whose args follow the `uv` launch convention:
// --directory <directory> run <script>.
func NewFromParts(name, command, directory, script string) *Server {
	return New(name, command, []string{"--directory", directory, "run", script})
}

// Clone returns a deep copy of the server.
func (s *Server) Clone() *Server {
	out := &Server{
		Name:    s.Name,
		Command: s.Command,
	}
	if s.Args != nil {
		out.Args = make([]string, len(s.Args))
		copy(out.Args, s.Args)
	}
	if s.unknownFields != nil {
		out.unknownFields = make(map[string]json.RawMessage, len(s.unknownFields))
		for k, v := range s.unknownFields {
			out.unknownFields[k] = v
		}
	}
	return out
}

// MarshalJSON implements json.Marshaler to include unknown fields in output.
func (s *Server) MarshalJSON() ([]byte, error) {
	result := make(map[string]any)

	// Copy unknown fields first (so known fields take precedence)
	for k, v := range s.unknownFields {
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return nil, err
		}
		result[k] = val
	}

	result["command"] = s.Command
	args := s.Args
	if args == nil {
		args = []string{}
	}
	result["args"] = args

	return json.Marshal(result)
}

// UnmarshalJSON implements json.Unmarshaler to capture unknown fields.
func (s *Server) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["command"]; ok {
		if err := json.Unmarshal(v, &s.Command); err != nil {
			return err
		}
		delete(raw, "command")
	}
	if v, ok := raw["args"]; ok {
		if err := json.Unmarshal(v, &s.Args); err != nil {
			return err
		}
		delete(raw, "args")
	}

	if len(raw) > 0 {
		s.unknownFields = raw
	}

	return nil
}

// Document is the persisted config document: the active and inactive server
// buckets. A name appears in at most one of the two buckets at any committed
// state.
type Document struct {
	// Active maps server names to entries the MCP client will launch.
	Active map[string]*Server

	// Inactive maps server names to stashed entries the client ignores.
	Inactive map[string]*Server

	// unknownFields stores top-level JSON fields other tools may keep in the
	// same file (Claude Desktop settings, etc.).
	unknownFields map[string]json.RawMessage
}

// JSON keys for the two buckets in the persisted document.
const (
	ActiveKey   = "mcpServers"
	InactiveKey = "unusedMcpServers"
)

// NewDocument creates an empty Document with initialized buckets.
func NewDocument() *Document {
	return &Document{
		Active:   make(map[string]*Server),
		Inactive: make(map[string]*Server),
	}
}

// Contains reports whether name exists in either bucket.
func (d *Document) Contains(name string) bool {
	_, inActive := d.Active[name]
	_, inInactive := d.Inactive[name]
	return inActive || inInactive
}

// MarshalJSON implements json.Marshaler to include unknown fields in output.
func (d *Document) MarshalJSON() ([]byte, error) {
	result := make(map[string]any)

	for k, v := range d.unknownFields {
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return nil, err
		}
		result[k] = val
	}

	active := d.Active
	if active == nil {
		active = map[string]*Server{}
	}
	inactive := d.Inactive
	if inactive == nil {
		inactive = map[string]*Server{}
	}
	result[ActiveKey] = active
	result[InactiveKey] = inactive

	return json.Marshal(result)
}

// UnmarshalJSON implements json.Unmarshaler to capture unknown fields.
// A bucket key missing from the JSON leaves the corresponding map nil;
// callers that require both buckets must check for that.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw[ActiveKey]; ok {
		if err := json.Unmarshal(v, &d.Active); err != nil {
			return err
		}
		delete(raw, ActiveKey)
	}
	if v, ok := raw[InactiveKey]; ok {
		if err := json.Unmarshal(v, &d.Inactive); err != nil {
			return err
		}
		delete(raw, InactiveKey)
	}

	// Entries carry their map key as Name
	for name, srv := range d.Active {
		if srv != nil {
			srv.Name = name
		}
	}
	for name, srv := range d.Inactive {
		if srv != nil {
			srv.Name = name
		}
	}

	if len(raw) > 0 {
		d.unknownFields = raw
	}

	return nil
}
