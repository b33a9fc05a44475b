package scripted

import (
	"strings"
	"text/template"

	"github.com/google/uuid"
)

// The generated C# embeds the bridge's {{RESULT_PATH}} placeholder
// verbatim, so these templates use [[ ]] delimiters instead.
func parse(name, text string) *template.Template {
	return template.Must(template.New(name).Delims("[[", "]]").Parse(text))
}

// render executes a template into the final payload string.
func render(t *template.Template, data any) string {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		// Templates are static and data is plain structs; a failure here
		// is a programming error.
		panic("scripted: " + err.Error())
	}
	return b.String()
}

// classSuffix returns a short unique suffix for generated class names.
func classSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}

// escapeCS escapes a value for embedding in a C# string literal.
func escapeCS(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `"`, `\"`)
}

var settingsGetTemplate = parse("settings_get", `using System;
using System.IO;
using System.Collections.Generic;
using Eplan.EplApi.Base;
using Eplan.EplApi.Scripting;

public class SettingsGet_[[.Suffix]]
{
    [Start]
    public void Run()
    {
        var results = new Dictionary<string, object>();

        try
        {
            var settings = new Settings();
            [[.CSType]] value = settings.[[.Method]]("[[.Path]]", [[.Index]]);
            results["success"] = true;
            results["value"] = value;
            results["type"] = "[[.TypeName]]";
        }
        catch (Exception ex)
        {
            results["success"] = false;
            results["error"] = ex.Message;
        }

        string json = Newtonsoft.Json.JsonConvert.SerializeObject(results);
        File.WriteAllText(@"{{RESULT_PATH}}", json);
    }
}
`)

var settingsSetTemplate = parse("settings_set", `using System;
using System.IO;
using System.Collections.Generic;
using Eplan.EplApi.Base;
using Eplan.EplApi.Scripting;

public class SettingsSet_[[.Suffix]]
{
    [Start]
    public void Run()
    {
        var results = new Dictionary<string, object>();

        try
        {
            var settings = new Settings();
            settings.[[.Method]]("[[.Path]]", [[.Literal]], [[.Index]]);
            results["success"] = true;
        }
        catch (Exception ex)
        {
            results["success"] = false;
            results["error"] = ex.Message;
        }

        string json = Newtonsoft.Json.JsonConvert.SerializeObject(results);
        File.WriteAllText(@"{{RESULT_PATH}}", json);
    }
}
`)

var pathSubstituteTemplate = parse("path_substitute", `using System;
using System.IO;
using System.Collections.Generic;
using Eplan.EplApi.Base;
using Eplan.EplApi.Scripting;

public class PathMap_[[.Suffix]]
{
    [Start]
    public void Run()
    {
        var results = new Dictionary<string, object>();

        try
        {
            string substituted = PathMap.SubstitutePath("[[.Path]]");
            results["success"] = true;
            results["original"] = "[[.Path]]";
            results["substituted"] = substituted;
        }
        catch (Exception ex)
        {
            results["success"] = false;
            results["error"] = ex.Message;
        }

        string json = Newtonsoft.Json.JsonConvert.SerializeObject(results);
        File.WriteAllText(@"{{RESULT_PATH}}", json);
    }
}
`)

var commonPathsTemplate = parse("common_paths", `using System;
using System.IO;
using System.Collections.Generic;
using Eplan.EplApi.Base;
using Eplan.EplApi.Scripting;

public class PathMapAll_[[.Suffix]]
{
    [Start]
    public void Run()
    {
        var results = new Dictionary<string, object>();
        var paths = new Dictionary<string, string>();

        string[] variables = new string[]
        {
            "$(PROJECTPATH)",
            "$(PROJECTNAME)",
            "$(DOC)",
            "$(ELOGIN)",
            "$(MD_MACROS)",
            "$(MD_PARTS)",
            "$(MD_SYMBOLS)",
            "$(MD_FORMS)",
            "$(MD_SCHEMES)",
            "$(MD_IMAGES)",
            "$(TEMPPATH)",
            "$(USERSETTINGSPATH)"
        };

        try
        {
            foreach (var v in variables)
            {
                try
                {
                    paths[v] = PathMap.SubstitutePath(v);
                }
                catch
                {
                    paths[v] = "(not available)";
                }
            }

            results["success"] = true;
            results["paths"] = paths;
        }
        catch (Exception ex)
        {
            results["success"] = false;
            results["error"] = ex.Message;
        }

        string json = Newtonsoft.Json.JsonConvert.SerializeObject(results, Newtonsoft.Json.Formatting.Indented);
        File.WriteAllText(@"{{RESULT_PATH}}", json);
    }
}
`)

var partsQueryTemplate = parse("parts_query", `using System;
using System.IO;
using System.Linq;
using System.Collections.Generic;
using Eplan.EplApi.MasterData;
using Eplan.EplApi.Scripting;

public class PartsQuery_[[.Suffix]]
{
    [Start]
    public void Run()
    {
        var results = new Dictionary<string, object>();
        var partsList = new List<Dictionary<string, object>>();

        try
        {
            var mdParts = new MDPartsManagement();
            using (var db = mdParts.OpenDatabase())
            {
                var parts = db.Parts[[if .Filter]]
                    .Where(p => p.[[.Filter.Property]]?.ToString()?.Contains("[[.Filter.Value]]") == true)[[end]]
                    .Take([[.Limit]])
                    .ToList();

                string[] propsToGet = new string[] { [[.PropsArray]] };

                foreach (var part in parts)
                {
                    var partDict = new Dictionary<string, object>();
                    foreach (var propName in propsToGet)
                    {
                        try
                        {
                            var prop = part.Properties.GetType().GetProperty(propName);
                            if (prop != null)
                            {
                                var val = prop.GetValue(part.Properties);
                                partDict[propName] = val?.ToString() ?? "";
                            }
                        }
                        catch { partDict[propName] = ""; }
                    }
                    partsList.Add(partDict);
                }

                results["success"] = true;
                results["count"] = partsList.Count;
                results["parts"] = partsList;
            }
        }
        catch (Exception ex)
        {
            results["success"] = false;
            results["error"] = ex.Message;
        }

        string json = Newtonsoft.Json.JsonConvert.SerializeObject(results, Newtonsoft.Json.Formatting.Indented);
        File.WriteAllText(@"{{RESULT_PATH}}", json);
    }
}
`)

var partsCountTemplate = parse("parts_count", `using System;
using System.IO;
using System.Linq;
using System.Collections.Generic;
using Eplan.EplApi.MasterData;
using Eplan.EplApi.Scripting;

public class PartsCount_[[.Suffix]]
{
    [Start]
    public void Run()
    {
        var results = new Dictionary<string, object>();

        try
        {
            var mdParts = new MDPartsManagement();
            using (var db = mdParts.OpenDatabase())
            {
                int count = db.Parts[[if .Filter]].Where(p => p.[[.Filter.Property]]?.ToString()?.Contains("[[.Filter.Value]]") == true)[[end]].Count();
                results["success"] = true;
                results["count"] = count;
            }
        }
        catch (Exception ex)
        {
            results["success"] = false;
            results["error"] = ex.Message;
        }

        string json = Newtonsoft.Json.JsonConvert.SerializeObject(results);
        File.WriteAllText(@"{{RESULT_PATH}}", json);
    }
}
`)

var partsGetTemplate = parse("parts_get", `using System;
using System.IO;
using System.Linq;
using System.Collections.Generic;
using Eplan.EplApi.MasterData;
using Eplan.EplApi.Scripting;

public class PartsGet_[[.Suffix]]
{
    [Start]
    public void Run()
    {
        var results = new Dictionary<string, object>();

        try
        {
            var mdParts = new MDPartsManagement();
            using (var db = mdParts.OpenDatabase())
            {
                var part = db.Parts.FirstOrDefault(p => p.PartNr == "[[.PartNr]]");

                if (part != null)
                {
                    var props = part.Properties;
                    var partDict = new Dictionary<string, object>
                    {
                        ["PartNr"] = props.ARTICLE_PARTNR ?? "",
                        ["Description1"] = props.ARTICLE_DESCR1 ?? "",
                        ["Description2"] = props.ARTICLE_DESCR2 ?? "",
                        ["Description3"] = props.ARTICLE_DESCR3 ?? "",
                        ["Manufacturer"] = props.ARTICLE_MANUFACTURER ?? "",
                        ["Supplier"] = props.ARTICLE_SUPPLIER ?? "",
                        ["OrderNr"] = props.ARTICLE_ORDERNR ?? "",
                        ["ProductGroup"] = part.ProductGroup.ToString(),
                        ["ProductSubGroup"] = part.ProductSubGroup.ToString(),
                        ["ProductTopGroup"] = part.ProductTopGroup.ToString()
                    };

                    results["success"] = true;
                    results["found"] = true;
                    results["part"] = partDict;
                }
                else
                {
                    results["success"] = true;
                    results["found"] = false;
                }
            }
        }
        catch (Exception ex)
        {
            results["success"] = false;
            results["error"] = ex.Message;
        }

        string json = Newtonsoft.Json.JsonConvert.SerializeObject(results, Newtonsoft.Json.Formatting.Indented);
        File.WriteAllText(@"{{RESULT_PATH}}", json);
    }
}
`)

var partsUpdateTemplate = parse("parts_update", `using System;
using System.IO;
using System.Linq;
using System.Collections.Generic;
using Eplan.EplApi.MasterData;
using Eplan.EplApi.Scripting;

public class PartsUpdate_[[.Suffix]]
{
    [Start]
    public void Run()
    {
        var results = new Dictionary<string, object>();

        try
        {
            var mdParts = new MDPartsManagement();
            using (var db = mdParts.OpenDatabase())
            {
                var part = db.Parts.FirstOrDefault(p => p.PartNr == "[[.PartNr]]");

                if (part != null)
                {
                    var prop = part.Properties.GetType().GetProperty("[[.Property]]");
                    if (prop != null)
                    {
                        prop.SetValue(part.Properties, "[[.Value]]");
                        results["success"] = true;
                        results["updated"] = true;
                    }
                    else
                    {
                        results["success"] = false;
                        results["error"] = "Property not found: [[.Property]]";
                    }
                }
                else
                {
                    results["success"] = false;
                    results["error"] = "Part not found: [[.PartNr]]";
                }
            }
        }
        catch (Exception ex)
        {
            results["success"] = false;
            results["error"] = ex.Message;
        }

        string json = Newtonsoft.Json.JsonConvert.SerializeObject(results);
        File.WriteAllText(@"{{RESULT_PATH}}", json);
    }
}
`)

var productGroupsTemplate = parse("product_groups", `using System;
using System.IO;
using System.Linq;
using System.Collections.Generic;
using Eplan.EplApi.MasterData;
using Eplan.EplApi.Scripting;

public class PartsGroups_[[.Suffix]]
{
    [Start]
    public void Run()
    {
        var results = new Dictionary<string, object>();

        try
        {
            var groups = Enum.GetNames(typeof(MDPartsDatabaseItem.Enums.ProductGroup)).ToList();
            var subGroups = Enum.GetNames(typeof(MDPartsDatabaseItem.Enums.ProductSubGroup)).ToList();
            var topGroups = Enum.GetNames(typeof(MDPartsDatabaseItem.Enums.ProductTopGroup)).ToList();

            results["success"] = true;
            results["productGroups"] = groups;
            results["productSubGroups"] = subGroups;
            results["productTopGroups"] = topGroups;
        }
        catch (Exception ex)
        {
            results["success"] = false;
            results["error"] = ex.Message;
        }

        string json = Newtonsoft.Json.JsonConvert.SerializeObject(results, Newtonsoft.Json.Formatting.Indented);
        File.WriteAllText(@"{{RESULT_PATH}}", json);
    }
}
`)
