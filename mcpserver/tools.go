package mcpserver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/eplanremote/remoting"
	"github.com/jonwraymond/eplanremote/script"
	"github.com/jonwraymond/eplanremote/scripted"
)

type emptyInput struct{}

type connectInput struct {
	Host string `json:"host,omitempty" jsonschema:"engine host, default localhost"`
	Port string `json:"port,omitempty" jsonschema:"remoting port, auto-detected when omitted"`
}

type executeInput struct {
	Action string `json:"action" jsonschema:"the full action string to dispatch"`
}

type runScriptInput struct {
	Source         string  `json:"source" jsonschema:"C# script source containing the {{RESULT_PATH}} placeholder"`
	TimeoutSeconds float64 `json:"timeout_seconds,omitempty" jsonschema:"max seconds to wait for the result document, default 30"`
}

type settingsGetInput struct {
	Path  string `json:"path" jsonschema:"full setting path, e.g. USER.TrDMProject.UserData.Longname"`
	Type  string `json:"type" jsonschema:"setting type: string, bool, int or double"`
	Index int    `json:"index,omitempty" jsonschema:"setting index, default 0"`
}

type settingsSetInput struct {
	Path  string `json:"path" jsonschema:"full setting path"`
	Type  string `json:"type" jsonschema:"setting type: string, bool, int or double"`
	Value string `json:"value" jsonschema:"value to set, parsed according to type"`
	Index int    `json:"index,omitempty" jsonschema:"setting index, default 0"`
}

type pathmapInput struct {
	Path string `json:"path" jsonschema:"path with engine variables, e.g. $(PROJECTPATH); empty lists all common variables"`
}

type partsQueryInput struct {
	FilterProperty string   `json:"filter_property,omitempty" jsonschema:"property to filter on, e.g. Manufacturer"`
	FilterValue    string   `json:"filter_value,omitempty" jsonschema:"substring the property must contain"`
	Properties     []string `json:"properties,omitempty" jsonschema:"properties to return per part"`
	Limit          int      `json:"limit,omitempty" jsonschema:"max parts to return, default 100"`
}

type partsGetInput struct {
	PartNumber string `json:"part_number" jsonschema:"the part number to look up"`
}

type serversOutput struct {
	Servers []remoting.Instance `json:"servers"`
	Count   int                 `json:"count"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "eplan_status",
		Description: "Get the current EPLAN connection status.",
	}, s.handleStatus)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "eplan_servers",
		Description: "List running EPLAN instances on the local machine.",
	}, s.handleServers)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "eplan_connect",
		Description: "Connect to EPLAN. The port is auto-detected when not specified.",
	}, s.handleConnect)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "eplan_disconnect",
		Description: "Disconnect from EPLAN.",
	}, s.handleDisconnect)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "eplan_ping",
		Description: "Check whether EPLAN is responding.",
	}, s.handlePing)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "eplan_execute_action",
		Description: "Dispatch one raw action string to EPLAN. Success only means the " +
			"engine accepted the action; its internal outcome is not observable here.",
	}, s.handleExecuteAction)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "eplan_run_script",
		Description: "Run a C# script inside EPLAN and return its JSON result document. " +
			"The script must write its results to the path given by {{RESULT_PATH}}.",
	}, s.handleRunScript)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "eplan_settings_get",
		Description: "Read a typed EPLAN setting.",
	}, s.handleSettingsGet)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "eplan_settings_set",
		Description: "Write a typed EPLAN setting.",
	}, s.handleSettingsSet)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "eplan_pathmap",
		Description: "Substitute EPLAN path variables, or list the common ones.",
	}, s.handlePathmap)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "eplan_parts_query",
		Description: "Query the EPLAN parts master database.",
	}, s.handlePartsQuery)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "eplan_parts_get",
		Description: "Get detailed information about one part.",
	}, s.handlePartsGet)
}

func (s *Server) handleStatus(ctx context.Context, req *mcp.CallToolRequest, in emptyInput) (*mcp.CallToolResult, remoting.Status, error) {
	return nil, s.client.Status(), nil
}

func (s *Server) handleServers(ctx context.Context, req *mcp.CallToolRequest, in emptyInput) (*mcp.CallToolResult, serversOutput, error) {
	servers := s.client.Servers(ctx)
	return nil, serversOutput{Servers: servers, Count: len(servers)}, nil
}

func (s *Server) handleConnect(ctx context.Context, req *mcp.CallToolRequest, in connectInput) (*mcp.CallToolResult, remoting.Result, error) {
	return nil, s.client.Connect(ctx, in.Host, in.Port), nil
}

func (s *Server) handleDisconnect(ctx context.Context, req *mcp.CallToolRequest, in emptyInput) (*mcp.CallToolResult, remoting.Result, error) {
	return nil, s.client.Disconnect(), nil
}

func (s *Server) handlePing(ctx context.Context, req *mcp.CallToolRequest, in emptyInput) (*mcp.CallToolResult, remoting.PingResult, error) {
	return nil, s.client.Ping(ctx), nil
}

func (s *Server) handleExecuteAction(ctx context.Context, req *mcp.CallToolRequest, in executeInput) (*mcp.CallToolResult, remoting.Result, error) {
	if in.Action == "" {
		return nil, remoting.Result{}, fmt.Errorf("action must not be empty")
	}
	return nil, s.client.ExecuteAction(ctx, in.Action), nil
}

func (s *Server) handleRunScript(ctx context.Context, req *mcp.CallToolRequest, in runScriptInput) (*mcp.CallToolResult, script.RunResult, error) {
	if in.Source == "" {
		return nil, script.RunResult{}, fmt.Errorf("source must not be empty")
	}
	timeout := time.Duration(in.TimeoutSeconds * float64(time.Second))
	return nil, s.client.RunScript(ctx, in.Source, timeout), nil
}

func (s *Server) handleSettingsGet(ctx context.Context, req *mcp.CallToolRequest, in settingsGetInput) (*mcp.CallToolResult, script.RunResult, error) {
	sc := s.client.Scripted()
	switch in.Type {
	case "string":
		return nil, sc.GetStringSetting(ctx, in.Path, in.Index), nil
	case "bool":
		return nil, sc.GetBoolSetting(ctx, in.Path, in.Index), nil
	case "int":
		return nil, sc.GetIntSetting(ctx, in.Path, in.Index), nil
	case "double":
		return nil, sc.GetDoubleSetting(ctx, in.Path, in.Index), nil
	default:
		return nil, script.RunResult{}, fmt.Errorf("unknown setting type %q", in.Type)
	}
}

func (s *Server) handleSettingsSet(ctx context.Context, req *mcp.CallToolRequest, in settingsSetInput) (*mcp.CallToolResult, script.RunResult, error) {
	sc := s.client.Scripted()
	switch in.Type {
	case "string":
		return nil, sc.SetStringSetting(ctx, in.Path, in.Value, in.Index), nil
	case "bool":
		v, err := strconv.ParseBool(in.Value)
		if err != nil {
			return nil, script.RunResult{}, fmt.Errorf("invalid bool value %q", in.Value)
		}
		return nil, sc.SetBoolSetting(ctx, in.Path, v, in.Index), nil
	case "int":
		v, err := strconv.Atoi(in.Value)
		if err != nil {
			return nil, script.RunResult{}, fmt.Errorf("invalid int value %q", in.Value)
		}
		return nil, sc.SetIntSetting(ctx, in.Path, v, in.Index), nil
	case "double":
		v, err := strconv.ParseFloat(in.Value, 64)
		if err != nil {
			return nil, script.RunResult{}, fmt.Errorf("invalid double value %q", in.Value)
		}
		return nil, sc.SetDoubleSetting(ctx, in.Path, v, in.Index), nil
	default:
		return nil, script.RunResult{}, fmt.Errorf("unknown setting type %q", in.Type)
	}
}

func (s *Server) handlePathmap(ctx context.Context, req *mcp.CallToolRequest, in pathmapInput) (*mcp.CallToolResult, script.RunResult, error) {
	if in.Path == "" {
		return nil, s.client.Scripted().CommonPaths(ctx), nil
	}
	return nil, s.client.Scripted().SubstitutePath(ctx, in.Path), nil
}

func (s *Server) handlePartsQuery(ctx context.Context, req *mcp.CallToolRequest, in partsQueryInput) (*mcp.CallToolResult, script.RunResult, error) {
	q := scripted.PartsQuery{Properties: in.Properties, Limit: in.Limit}
	if in.FilterProperty != "" && in.FilterValue != "" {
		q.Filter = &scripted.PartsFilter{Property: in.FilterProperty, Value: in.FilterValue}
	}
	return nil, s.client.Scripted().QueryParts(ctx, q), nil
}

func (s *Server) handlePartsGet(ctx context.Context, req *mcp.CallToolRequest, in partsGetInput) (*mcp.CallToolResult, script.RunResult, error) {
	if in.PartNumber == "" {
		return nil, script.RunResult{}, fmt.Errorf("part_number must not be empty")
	}
	return nil, s.client.Scripted().GetPart(ctx, in.PartNumber), nil
}
