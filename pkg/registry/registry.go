// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// SaveRegistry writes the registry as indented JSON, creating the parent
// directory when missing.
func SaveRegistry(reg *ActivityRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the structural integrity of the registry: version set,
// unique IDs and task types, and the fields every activity must carry.
func (r *ActivityRegistry) Validate() error {
	if r.Version == "" {
		return fmt.Errorf("registry version is empty")
	}

	seenIDs := make(map[string]bool)
	seenTaskTypes := make(map[string]bool)

	for i, a := range r.Activities {
		if a.ID == "" {
			return fmt.Errorf("activity %d: id is empty", i)
		}
		if seenIDs[a.ID] {
			return fmt.Errorf("activity %s: duplicate id", a.ID)
		}
		seenIDs[a.ID] = true

		if a.DisplayName == "" {
			return fmt.Errorf("activity %s: displayName is empty", a.ID)
		}
		if a.TaskType == "" {
			return fmt.Errorf("activity %s: taskType is empty", a.ID)
		}
		if seenTaskTypes[a.TaskType] {
			return fmt.Errorf("activity %s: duplicate taskType %s", a.ID, a.TaskType)
		}
		seenTaskTypes[a.TaskType] = true

		if a.Category == "" {
			return fmt.Errorf("activity %s: category is empty", a.ID)
		}
		if len(a.InputSchema) == 0 {
			return fmt.Errorf("activity %s: inputSchema is empty", a.ID)
		}
		if len(a.OutputSchema) == 0 {
			return fmt.Errorf("activity %s: outputSchema is empty", a.ID)
		}
	}

	return nil
}

// ValidateInput checks a job payload against the input schema registered
// for the task type.
func (r *ActivityRegistry) ValidateInput(taskType string, payload map[string]interface{}) error {
	activity := r.FindByTaskType(taskType)
	if activity == nil {
		return fmt.Errorf("no activity registered for task type %s", taskType)
	}
	return validatePayload(activity.InputSchema, payload, "input")
}

// ValidateOutput checks worker output variables against the output schema
// registered for the task type.
func (r *ActivityRegistry) ValidateOutput(taskType string, payload map[string]interface{}) error {
	activity := r.FindByTaskType(taskType)
	if activity == nil {
		return fmt.Errorf("no activity registered for task type %s", taskType)
	}
	return validatePayload(activity.OutputSchema, payload, "output")
}

func validatePayload(schema, payload map[string]interface{}, kind string) error {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(payload))
	if err != nil {
		return fmt.Errorf("%s schema validation: %w", kind, err)
	}

	if !result.Valid() {
		msgs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			msgs[i] = desc.String()
		}
		return fmt.Errorf("%s payload invalid: %s", kind, strings.Join(msgs, "; "))
	}

	return nil
}
