package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/iota-uz/migscope/modules/migration/domain/records"
	"github.com/iota-uz/migscope/modules/migration/services"
	"github.com/iota-uz/migscope/pkg/application"
	"github.com/iota-uz/migscope/pkg/configuration"
)

type MigrationAPIController struct {
	app           application.Application
	imports       *services.ImportService
	reconciler    *services.ReconciliationService
	queries       *services.QueryService
	scorer        *services.ScoringService
	maintenance   *services.MaintenanceService
	environments  *services.EnvironmentService
	maxUploadSize int64
	basePath      string
}

func NewMigrationAPIController(app application.Application) application.Controller {
	return &MigrationAPIController{
		app:           app,
		imports:       app.Service(services.ImportService{}).(*services.ImportService),
		reconciler:    app.Service(services.ReconciliationService{}).(*services.ReconciliationService),
		queries:       app.Service(services.QueryService{}).(*services.QueryService),
		scorer:        app.Service(services.ScoringService{}).(*services.ScoringService),
		maintenance:   app.Service(services.MaintenanceService{}).(*services.MaintenanceService),
		environments:  app.Service(services.EnvironmentService{}).(*services.EnvironmentService),
		maxUploadSize: configuration.Use().MaxUploadSize,
		basePath:      "/migration",
	}
}

func (c *MigrationAPIController) Key() string {
	return c.basePath
}

func (c *MigrationAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()

	router.HandleFunc("/imports/{kind}", c.Import).Methods(http.MethodPost)
	router.HandleFunc("/imports/{kind}", c.ClearKind).Methods(http.MethodDelete)
	router.HandleFunc("/imports", c.ImportState).Methods(http.MethodGet)
	router.HandleFunc("/reinitialize", c.Reinitialize).Methods(http.MethodPost)

	router.HandleFunc("/reconciliation", c.Reconcile).Methods(http.MethodPost)

	router.HandleFunc("/combined", c.Query).Methods(http.MethodGet)
	router.HandleFunc("/combined/{group}/{account}", c.GetByKey).Methods(http.MethodGet)
	router.HandleFunc("/combined/{group}/{account}", c.Update).Methods(http.MethodPatch)

	router.HandleFunc("/progress", c.Progress).Methods(http.MethodGet)

	router.HandleFunc("/environment", c.Environment).Methods(http.MethodGet)
	router.HandleFunc("/environment", c.SwitchEnvironment).Methods(http.MethodPost)
}

func (c *MigrationAPIController) Import(w http.ResponseWriter, r *http.Request) {
	kind, err := records.ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		writeAPIError(w, http.StatusNotFound, "IMPORT_UNKNOWN_KIND", err.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, c.maxUploadSize)
	if err := r.ParseMultipartForm(c.maxUploadSize); err != nil {
		writeAPIError(w, http.StatusRequestEntityTooLarge, "IMPORT_UPLOAD_TOO_LARGE", "upload exceeds the size limit")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "IMPORT_NO_FILE", `multipart field "file" is required`)
		return
	}
	defer func() { _ = file.Close() }()

	result, err := c.imports.Import(r.Context(), kind, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (c *MigrationAPIController) ClearKind(w http.ResponseWriter, r *http.Request) {
	kind, err := records.ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		writeAPIError(w, http.StatusNotFound, "IMPORT_UNKNOWN_KIND", err.Error())
		return
	}
	if err := c.imports.Clear(r.Context(), kind); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *MigrationAPIController) ImportState(w http.ResponseWriter, r *http.Request) {
	tracker := c.imports.Tracker()
	state := tracker.State()

	results := make(map[string]any, len(records.Kinds()))
	for _, kind := range records.Kinds() {
		if result := tracker.ResultFor(kind); result != nil {
			results[kind.String()] = result
		}
	}

	counts, err := c.imports.Counts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"processing": state.Processing,
		"operation":  state.Operation,
		"progress":   state.Progress,
		"selected":   state.Selected,
		"results":    results,
		"counts":     counts,
	})
}

func (c *MigrationAPIController) Reinitialize(w http.ResponseWriter, r *http.Request) {
	if err := c.imports.Reinitialize(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *MigrationAPIController) Reconcile(w http.ResponseWriter, r *http.Request) {
	report, err := c.reconciler.Rebuild(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Query accepts parallel field/op/value parameter triples, e.g.
// ?field=application&op=contains&value=SAP&field=department&op=is+not+empty&value=.
func (c *MigrationAPIController) Query(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fields, ops, values := q["field"], q["op"], q["value"]
	if len(ops) != len(fields) || (len(values) != len(fields) && len(values) != 0) {
		writeAPIError(w, http.StatusBadRequest, "QUERY_INVALID", "field, op and value parameters must align")
		return
	}

	conditions := make([]services.Condition, 0, len(fields))
	for i := range fields {
		cond := services.Condition{Field: fields[i], Operator: ops[i]}
		if i < len(values) {
			cond.Value = values[i]
		}
		conditions = append(conditions, cond)
	}

	limit := parseIntParam(q.Get("limit"), 100)
	offset := parseIntParam(q.Get("offset"), 0)
	items, err := c.queries.Query(r.Context(), conditions, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"count": len(items),
	})
}

func (c *MigrationAPIController) GetByKey(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	record, err := c.queries.GetByKey(r.Context(), vars["group"], vars["account"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

type updateRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (c *MigrationAPIController) Update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "UPDATE_INVALID_JSON", "invalid json")
		return
	}

	vars := mux.Vars(r)
	group, account := vars["group"], vars["account"]

	var err error
	switch strings.TrimSpace(req.Field) {
	case "package_status":
		err = c.maintenance.UpdatePackageStatus(r.Context(), group, account, req.Value)
	case "package_ready_date":
		err = c.maintenance.UpdatePackageReadyDate(r.Context(), group, account, req.Value)
	case "test_status":
		err = c.maintenance.UpdateTestStatus(r.Context(), group, account, req.Value)
	case "migration_cluster":
		err = c.maintenance.UpdateMigrationCluster(r.Context(), group, account, req.Value)
	default:
		writeAPIError(w, http.StatusBadRequest, "UPDATE_UNKNOWN_FIELD", "field is not editable")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *MigrationAPIController) Progress(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := c.scorer.Score(r.Context(), services.ScoreOptions{
		ExcludeRedirected: q.Get("excludeRedirected") == "true",
		ExceptLeft:        q.Get("exceptLeft") == "true",
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (c *MigrationAPIController) Environment(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"current":   c.environments.Current(),
		"available": c.environments.Names(),
	})
}

type switchRequest struct {
	Name string `json:"name"`
}

func (c *MigrationAPIController) SwitchEnvironment(w http.ResponseWriter, r *http.Request) {
	var req switchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "ENV_INVALID_JSON", "invalid json")
		return
	}
	if err := c.environments.Switch(r.Context(), req.Name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"current": c.environments.Current()})
}

func parseIntParam(v string, fallback int) int {
	if v == "" {
		return fallback
	}
	if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
		return parsed
	}
	return fallback
}
