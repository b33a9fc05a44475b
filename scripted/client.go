package scripted

import (
	"context"
	"strconv"
	"time"

	"github.com/jonwraymond/eplanremote/script"
)

// Client runs the generated scripts through a bridge. Methods block until
// the engine's result document arrives or the bridge times out; outcomes
// use the bridge's uniform RunResult shape.
type Client struct {
	bridge *script.Bridge
}

// NewClient wraps a script bridge.
func NewClient(bridge *script.Bridge) *Client {
	return &Client{bridge: bridge}
}

// Custom runs a caller-supplied C# payload. The payload must contain the
// bridge's result-path placeholder and write its JSON document there.
func (c *Client) Custom(ctx context.Context, source string, timeout time.Duration) script.RunResult {
	return c.bridge.Run(ctx, source, timeout)
}

type settingsGetData struct {
	Suffix   string
	CSType   string
	Method   string
	TypeName string
	Path     string
	Index    int
}

type settingsSetData struct {
	Suffix  string
	Method  string
	Path    string
	Literal string
	Index   int
}

// GetStringSetting reads a string setting by its full path, e.g.
// "USER.TrDMProject.UserData.Longname".
func (c *Client) GetStringSetting(ctx context.Context, path string, index int) script.RunResult {
	return c.bridge.Run(ctx, render(settingsGetTemplate, settingsGetData{
		Suffix: classSuffix(), CSType: "string", Method: "GetStringSetting",
		TypeName: "string", Path: escapeCS(path), Index: index,
	}), 0)
}

// SetStringSetting writes a string setting.
func (c *Client) SetStringSetting(ctx context.Context, path, value string, index int) script.RunResult {
	return c.bridge.Run(ctx, render(settingsSetTemplate, settingsSetData{
		Suffix: classSuffix(), Method: "SetStringSetting",
		Path: escapeCS(path), Literal: `"` + escapeCS(value) + `"`, Index: index,
	}), 0)
}

// GetBoolSetting reads a boolean setting.
func (c *Client) GetBoolSetting(ctx context.Context, path string, index int) script.RunResult {
	return c.bridge.Run(ctx, render(settingsGetTemplate, settingsGetData{
		Suffix: classSuffix(), CSType: "bool", Method: "GetBoolSetting",
		TypeName: "bool", Path: escapeCS(path), Index: index,
	}), 0)
}

// SetBoolSetting writes a boolean setting.
func (c *Client) SetBoolSetting(ctx context.Context, path string, value bool, index int) script.RunResult {
	return c.bridge.Run(ctx, render(settingsSetTemplate, settingsSetData{
		Suffix: classSuffix(), Method: "SetBoolSetting",
		Path: escapeCS(path), Literal: strconv.FormatBool(value), Index: index,
	}), 0)
}

// GetIntSetting reads a numeric setting.
func (c *Client) GetIntSetting(ctx context.Context, path string, index int) script.RunResult {
	return c.bridge.Run(ctx, render(settingsGetTemplate, settingsGetData{
		Suffix: classSuffix(), CSType: "int", Method: "GetNumericSetting",
		TypeName: "int", Path: escapeCS(path), Index: index,
	}), 0)
}

// SetIntSetting writes a numeric setting.
func (c *Client) SetIntSetting(ctx context.Context, path string, value, index int) script.RunResult {
	return c.bridge.Run(ctx, render(settingsSetTemplate, settingsSetData{
		Suffix: classSuffix(), Method: "SetNumericSetting",
		Path: escapeCS(path), Literal: strconv.Itoa(value), Index: index,
	}), 0)
}

// GetDoubleSetting reads a floating-point setting.
func (c *Client) GetDoubleSetting(ctx context.Context, path string, index int) script.RunResult {
	return c.bridge.Run(ctx, render(settingsGetTemplate, settingsGetData{
		Suffix: classSuffix(), CSType: "double", Method: "GetDoubleSetting",
		TypeName: "double", Path: escapeCS(path), Index: index,
	}), 0)
}

// SetDoubleSetting writes a floating-point setting.
func (c *Client) SetDoubleSetting(ctx context.Context, path string, value float64, index int) script.RunResult {
	return c.bridge.Run(ctx, render(settingsSetTemplate, settingsSetData{
		Suffix: classSuffix(), Method: "SetDoubleSetting",
		Path: escapeCS(path), Literal: strconv.FormatFloat(value, 'g', -1, 64), Index: index,
	}), 0)
}

type pathData struct {
	Suffix string
	Path   string
}

// SubstitutePath expands engine path variables in the given string, e.g.
// "$(PROJECTPATH)" or "$(MD_PARTS)".
func (c *Client) SubstitutePath(ctx context.Context, path string) script.RunResult {
	return c.bridge.Run(ctx, render(pathSubstituteTemplate, pathData{
		Suffix: classSuffix(), Path: escapeCS(path),
	}), 0)
}

// CommonPaths resolves the common engine path variables in one call.
func (c *Client) CommonPaths(ctx context.Context) script.RunResult {
	return c.bridge.Run(ctx, render(commonPathsTemplate, pathData{Suffix: classSuffix()}), 0)
}
