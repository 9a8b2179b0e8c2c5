// cmd/tools/registry-updater/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"vessel-risk-workers/internal/common/validation"
	"vessel-risk-workers/pkg/registry"

	avr "vessel-risk-workers/internal/workers/assessment/assess-vessel-risk"
	gfr "vessel-risk-workers/internal/workers/assessment/generate-fleet-report"
	grm "vessel-risk-workers/internal/workers/assessment/generate-risk-matrix"
	sim "vessel-risk-workers/internal/workers/assessment/simulate-scenario"
	qvd "vessel-risk-workers/internal/workers/data-access/query-vessel-data"
	sah "vessel-risk-workers/internal/workers/data-access/search-assessment-history"
	dfa "vessel-risk-workers/internal/workers/notification/dispatch-fleet-alert"
)

var registryPath = "configs/activity-registry.json"

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	syncCmd := flag.NewFlagSet("sync", flag.ExitOnError)

	// Add command flags
	idAdd := addCmd.String("id", "", "Activity ID (e.g., assess-vessel-risk)")
	displayName := addCmd.String("displayName", "", "Display Name (e.g., Assess Vessel Risk)")
	description := addCmd.String("description", "", "Description")
	category := addCmd.String("category", "", "Category (assessment, data-access, notification)")
	taskType := addCmd.String("taskType", "", "Camunda Task Type (e.g., assess-vessel-risk)")
	version := addCmd.String("version", "1.0.0", "Version")
	implStatus := addCmd.String("status", registry.StatusPlanned, "Implementation Status (planned, implemented)")
	addCmd.StringVar(&registryPath, "path", registryPath, "Path to registry file")

	// Update command flags
	idUpdate := updateCmd.String("id", "", "Activity ID to update")
	field := updateCmd.String("field", "", "Field to update (status, version, etc.)")
	value := updateCmd.String("value", "", "New value for the field")
	updateCmd.StringVar(&registryPath, "path", registryPath, "Path to registry file")

	validateCmd.StringVar(&registryPath, "path", registryPath, "Path to registry file")
	syncCmd.StringVar(&registryPath, "path", registryPath, "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *idAdd == "" || *displayName == "" || *description == "" || *category == "" || *taskType == "" {
			fmt.Println("Error: id, displayName, description, category, and taskType are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		if err := validation.ValidateActivityNaming(*idAdd); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		activity := registry.Activity{
			ID:                   *idAdd,
			DisplayName:          *displayName,
			Description:          *description,
			Category:             *category,
			Version:              *version,
			TaskType:             *taskType,
			ImplementationStatus: *implStatus,
			InputSchema:          map[string]interface{}{},
			OutputSchema:         map[string]interface{}{},
			ErrorCodes:           []string{},
			Timeout:              "30s",
			Retries:              3,
			Workflows:            []string{},
			Tags:                 []string{},
		}
		err := addActivity(&activity)
		if err != nil {
			fmt.Printf("Error adding activity: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added activity: %s\n", *idAdd)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *idUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: id, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		err := updateActivity(*idUpdate, *field, *value)
		if err != nil {
			fmt.Printf("Error updating activity: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated activity %s, field %s to %s\n", *idUpdate, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		err := validateRegistry()
		if err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Registry validation passed.")

	case "sync":
		syncCmd.Parse(os.Args[2:])
		err := syncActivities()
		if err != nil {
			fmt.Printf("Registry sync failed: %v\n", err)
			os.Exit(1)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

func addActivity(activity *registry.Activity) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		// If file doesn't exist, create new registry
		if os.IsNotExist(err) {
			reg = &registry.ActivityRegistry{
				Version:     "1.0.0",
				LastUpdated: time.Now().Format(time.RFC3339),
				Activities:  []registry.Activity{},
			}
		} else {
			return fmt.Errorf("failed to load registry: %w", err)
		}
	}

	if reg.FindByID(activity.ID) != nil {
		return fmt.Errorf("activity with ID %s already exists", activity.ID)
	}

	reg.Activities = append(reg.Activities, *activity)
	reg.LastUpdated = time.Now().Format(time.RFC3339)

	return registry.SaveRegistry(reg, registryPath)
}

func updateActivity(id, field, value string) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	activity := reg.FindByID(id)
	if activity == nil {
		return fmt.Errorf("activity with ID %s not found", id)
	}

	switch field {
	case "status":
		activity.ImplementationStatus = value
	case "version":
		activity.Version = value
	case "displayName":
		activity.DisplayName = value
	case "description":
		activity.Description = value
	case "category":
		activity.Category = value
	case "taskType":
		activity.TaskType = value
	case "timeout":
		activity.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		activity.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	reg.LastUpdated = time.Now().Format(time.RFC3339)
	return registry.SaveRegistry(reg, registryPath)
}

func validateRegistry() error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	if len(reg.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	if err := reg.Validate(); err != nil {
		return err
	}

	fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))
	return nil
}

// activitySource describes one worker package as the registry should record
// it. Schemas come straight from the package so the registry cannot drift
// from the code.
type activitySource struct {
	id           string
	displayName  string
	description  string
	category     string
	inputSchema  validation.JSONSchema
	outputSchema validation.JSONSchema
	errorCodes   []string
	workflows    []string
	tags         []string
}

func implementedActivities() []activitySource {
	return []activitySource{
		{
			id:           qvd.TaskType,
			displayName:  "Query Vessel Data",
			description:  "Loads vessel particulars and inspection history from PostgreSQL",
			category:     registry.CategoryDataAccess,
			inputSchema:  qvd.GetInputSchema(),
			outputSchema: qvd.GetOutputSchema(),
			errorCodes: []string{
				"DATABASE_CONNECTION_FAILED", "QUERY_EXECUTION_FAILED",
				"QUERY_TIMEOUT", "INVALID_QUERY_TYPE", "VESSEL_NOT_FOUND",
			},
			workflows: []string{"vessel-risk-assessment"},
			tags:      []string{"postgres", "vessels"},
		},
		{
			id:           sah.TaskType,
			displayName:  "Search Assessment History",
			description:  "Searches archived risk assessments in Elasticsearch",
			category:     registry.CategoryDataAccess,
			inputSchema:  sah.GetInputSchema(),
			outputSchema: sah.GetOutputSchema(),
			errorCodes: []string{
				"ELASTICSEARCH_CONNECTION_FAILED", "SEARCH_FAILED",
				"SEARCH_TIMEOUT", "INDEX_NOT_FOUND",
			},
			workflows: []string{"vessel-risk-assessment"},
			tags:      []string{"elasticsearch", "history"},
		},
		{
			id:           avr.TaskType,
			displayName:  "Assess Vessel Risk",
			description:  "Scores one vessel across age, history and MOU factors",
			category:     registry.CategoryAssessment,
			inputSchema:  avr.GetInputSchema(),
			outputSchema: avr.GetOutputSchema(),
			errorCodes:   []string{"VESSEL_NOT_FOUND", "DATASET_LOAD_FAILED"},
			workflows:    []string{"vessel-risk-assessment"},
			tags:         []string{"risk", "scoring"},
		},
		{
			id:           grm.TaskType,
			displayName:  "Generate Risk Matrix",
			description:  "Builds the 5x5 probability and severity matrix for the fleet",
			category:     registry.CategoryAssessment,
			inputSchema:  grm.GetInputSchema(),
			outputSchema: grm.GetOutputSchema(),
			errorCodes:   []string{"DATASET_LOAD_FAILED"},
			workflows:    []string{"vessel-risk-assessment", "fleet-risk-report"},
			tags:         []string{"risk", "matrix"},
		},
		{
			id:           sim.TaskType,
			displayName:  "Simulate Scenario",
			description:  "Projects fleet risk under what-if interventions",
			category:     registry.CategoryAssessment,
			inputSchema:  sim.GetInputSchema(),
			outputSchema: sim.GetOutputSchema(),
			errorCodes:   []string{"DATASET_LOAD_FAILED"},
			workflows:    []string{"fleet-risk-report"},
			tags:         []string{"risk", "simulation"},
		},
		{
			id:           gfr.TaskType,
			displayName:  "Generate Fleet Report",
			description:  "Aggregates fleet-wide risk with top vessels and recommendations",
			category:     registry.CategoryAssessment,
			inputSchema:  gfr.GetInputSchema(),
			outputSchema: gfr.GetOutputSchema(),
			errorCodes:   []string{"DATASET_LOAD_FAILED"},
			workflows:    []string{"fleet-risk-report"},
			tags:         []string{"fleet", "reporting"},
		},
		{
			id:           dfa.TaskType,
			displayName:  "Dispatch Fleet Alert",
			description:  "Sends fleet risk alerts over email and SMS",
			category:     registry.CategoryNotification,
			inputSchema:  dfa.GetInputSchema(),
			outputSchema: dfa.GetOutputSchema(),
			errorCodes:   []string{"ALERT_DISPATCH_FAILED", "ALERT_TEMPLATE_INVALID"},
			workflows:    []string{"fleet-risk-report"},
			tags:         []string{"alerting", "email", "sms"},
		},
	}
}

// syncActivities regenerates the registry entries for every implemented
// worker. Manual version bumps survive; everything else is overwritten
// from the worker packages.
func syncActivities() error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		if os.IsNotExist(err) {
			reg = &registry.ActivityRegistry{
				Version:    "1.0.0",
				Activities: []registry.Activity{},
			}
		} else {
			return fmt.Errorf("failed to load registry: %w", err)
		}
	}

	for _, src := range implementedActivities() {
		inputSchema, err := schemaToMap(src.inputSchema)
		if err != nil {
			return fmt.Errorf("activity %s: input schema: %w", src.id, err)
		}
		outputSchema, err := schemaToMap(src.outputSchema)
		if err != nil {
			return fmt.Errorf("activity %s: output schema: %w", src.id, err)
		}

		activity := registry.Activity{
			ID:                   src.id,
			DisplayName:          src.displayName,
			Description:          src.description,
			Category:             src.category,
			Version:              "1.0.0",
			TaskType:             src.id,
			ImplementationStatus: registry.StatusImplemented,
			InputSchema:          inputSchema,
			OutputSchema:         outputSchema,
			ErrorCodes:           src.errorCodes,
			Timeout:              "30s",
			Retries:              3,
			Workflows:            src.workflows,
			Tags:                 src.tags,
		}

		if existing := reg.FindByID(src.id); existing != nil {
			activity.Version = existing.Version
			*existing = activity
			fmt.Printf("Updated activity: %s\n", src.id)
		} else {
			reg.Activities = append(reg.Activities, activity)
			fmt.Printf("Added activity: %s\n", src.id)
		}
	}

	reg.LastUpdated = time.Now().Format(time.RFC3339)

	if err := reg.Validate(); err != nil {
		return fmt.Errorf("synced registry invalid: %w", err)
	}
	if err := registry.SaveRegistry(reg, registryPath); err != nil {
		return err
	}

	fmt.Printf("Registry synced. %d activities in %s\n", len(reg.Activities), registryPath)
	return nil
}

func schemaToMap(schema validation.JSONSchema) (map[string]interface{}, error) {
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func help() {
	fmt.Print(`
Usage: registry-updater <command> [flags]

Commands:
  add      Add a new activity to the registry
  update   Update an existing activity's field
  validate Validate the registry file
  sync     Regenerate entries for all implemented workers from their code
  help     Show this help message

Examples:
  registry-updater add -id assess-vessel-risk -displayName "Assess Vessel Risk" -description "Scores one vessel across age, history and MOU factors" -category assessment -taskType assess-vessel-risk
  registry-updater update -id assess-vessel-risk -field status -value implemented
  registry-updater validate -path configs/activity-registry.json
  registry-updater sync

Use 'registry-updater <command> -h' for more information about a command.

`)
}
