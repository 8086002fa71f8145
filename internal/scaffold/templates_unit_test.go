package scaffold

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/dvgen/internal/config"
	"github.com/vvka-141/dvgen/internal/files/filesystem"
	"github.com/vvka-141/dvgen/internal/model"
)

// TestTemplateStructure validates every embedded template directly from the
// embedded FS, without filesystem I/O.
func TestTemplateStructure(t *testing.T) {
	templates, err := ListTemplates()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"basic", "advanced"}, templates)

	for _, templateName := range templates {
		t.Run(templateName, func(t *testing.T) {
			testTemplateStructure(t, templateName)
		})
	}
}

func testTemplateStructure(t *testing.T, templateName string) {
	t.Helper()

	efs := filesystem.NewEmbedFileSystem(templatesFS, "templates/"+templateName)

	t.Run("dvgen.yaml parses", func(t *testing.T) {
		data, err := efs.ReadFile("dvgen.yaml")
		require.NoError(t, err, "dvgen.yaml should exist in template")

		var cfg config.ProjectConfig
		require.NoError(t, yaml.Unmarshal(data, &cfg))
		require.NotEmpty(t, cfg.Connection.Host)
		require.NotZero(t, cfg.Connection.Port)
		require.Equal(t, "model.yaml", cfg.Model.Path)
		require.Equal(t, "export", cfg.Export.OutputDir)
	})

	t.Run("model.yaml parses", func(t *testing.T) {
		data, err := efs.ReadFile("model.yaml")
		require.NoError(t, err, "model.yaml should exist in template")

		var f struct {
			Version int           `yaml:"version"`
			Tables  []model.Table `yaml:"tables"`
		}
		require.NoError(t, yaml.Unmarshal(data, &f))
		require.Equal(t, 1, f.Version)

		if templateName == "basic" {
			require.Empty(t, f.Tables, "basic template starts unannotated")
			return
		}

		// The advanced template ships a valid annotated model.
		m := &model.Model{Tables: f.Tables}
		result := model.Validate(m)
		require.False(t, result.HasErrors(), "advanced template model should validate: %s", result.ErrorString())
		require.NotEmpty(t, f.Tables)

		var links int
		for i := range f.Tables {
			links += len(f.Tables[i].LinkGroups())
			require.NotEmpty(t, f.Tables[i].HubGroups(), "every example table defines a business key")
		}
		require.Greater(t, links, 0, "advanced template should demonstrate a link")
	})

	t.Run("supporting files exist", func(t *testing.T) {
		for _, name := range []string{"README.md", ".env.example"} {
			data, err := efs.ReadFile(name)
			require.NoError(t, err, "%s should exist in template", name)
			require.NotEmpty(t, data)
		}
	})

	t.Run("project name placeholder present", func(t *testing.T) {
		data, err := efs.ReadFile("README.md")
		require.NoError(t, err)
		require.Contains(t, string(data), "{{PROJECT_NAME}}")
	})
}

// TestProcessTemplate verifies project-name substitution.
func TestProcessTemplate(t *testing.T) {
	s := NewScaffolder(false)
	out := s.processTemplate("# {{PROJECT_NAME}}\nname: {{PROJECT_NAME}}", "warehouse")
	require.Equal(t, "# warehouse\nname: warehouse", out)
}
