package nifi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/webcat/nifictl/internal/log"
	"github.com/webcat/nifictl/internal/metrics"
	"github.com/webcat/nifictl/internal/model"
)

// EngineClientConfig is the configuration for the engine client.
type EngineClientConfig struct {
	// BaseURL is the engine API root (e.g. "http://nifi:8080/nifi-api").
	BaseURL string
	// HTTPClient is the HTTP client used for all requests.
	HTTPClient *http.Client
	// Metrics is the measurement recorder.
	Metrics metrics.Recorder
	// Logger for logging.
	Logger log.Logger
}

func (c *EngineClientConfig) defaults() error {
	if c.BaseURL == "" {
		return fmt.Errorf("engine base URL is required")
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")

	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}

	if c.Metrics == nil {
		c.Metrics = metrics.Noop
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "nifi.EngineClient"})

	return nil
}

// EngineClient is the HTTP implementation of Client.
//
// It is stateless apart from the immutable base URL and the underlying
// connection pool, and is safe to share across concurrent callers.
type EngineClient struct {
	baseURL    string
	httpClient *http.Client
	metrics    metrics.Recorder
	logger     log.Logger
}

// NewEngineClient creates a new engine client.
func NewEngineClient(cfg EngineClientConfig) (*EngineClient, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &EngineClient{
		baseURL:    cfg.BaseURL,
		httpClient: cfg.HTTPClient,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
	}, nil
}

var _ Client = &EngineClient{}

// --- JSON wire types (engine entity schemas) ---

type revisionJSON struct {
	// Version is a pointer so a missing or null version can be told apart
	// from a real 0.
	Version *int64 `json:"version"`
}

type positionJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type createGroupRequestJSON struct {
	Revision  revisionJSON       `json:"revision"`
	Component groupComponentJSON `json:"component"`
}

type groupComponentJSON struct {
	Name     string       `json:"name"`
	Position positionJSON `json:"position"`
}

type createProcessorRequestJSON struct {
	Revision  revisionJSON           `json:"revision"`
	Component processorComponentJSON `json:"component"`
}

type processorComponentJSON struct {
	Type           string            `json:"type"`
	Position       positionJSON      `json:"position"`
	Configurations map[string]string `json:"configurations"`
}

type runStatusRequestJSON struct {
	Revision  requestRevisionJSON    `json:"revision"`
	Component runStatusComponentJSON `json:"component"`
}

type requestRevisionJSON struct {
	Version int64 `json:"version"`
}

type runStatusComponentJSON struct {
	State string `json:"state"`
}

type createdEntityJSON struct {
	// ID is a pointer so a missing id can be told apart from an empty one.
	ID *string `json:"id"`
}

type groupEntityJSON struct {
	Revision *revisionJSON `json:"revision"`
}

// newGroupPosition is where new process groups are placed on the canvas.
var newGroupPosition = positionJSON{X: 0, Y: 0}

// newProcessorPosition is where new processors are placed on the canvas.
var newProcessorPosition = positionJSON{X: 100, Y: 100}

func (c *EngineClient) CreateProcessGroup(ctx context.Context, parentID, name string) (string, error) {
	if parentID == "" {
		return "", fmt.Errorf("parent group id is required: %w", model.ErrNotValid)
	}
	if name == "" {
		return "", fmt.Errorf("name is required: %w", model.ErrNotValid)
	}

	reqBody := createGroupRequestJSON{
		// New resources are always created asserting revision 0.
		Revision:  revisionJSON{Version: int64Ptr(0)},
		Component: groupComponentJSON{Name: name, Position: newGroupPosition},
	}

	path := fmt.Sprintf("/process-groups/%s/process-groups", url.PathEscape(parentID))

	entity := createdEntityJSON{}
	err := c.call(ctx, "create_process_group", http.MethodPost, path, reqBody, &entity)
	if err != nil {
		return "", err
	}

	if entity.ID == nil {
		return "", fmt.Errorf("id is not a string: %w", model.ErrProtocol)
	}

	c.logger.Debugf("Created process group %q under %s: %s", name, parentID, *entity.ID)
	return *entity.ID, nil
}

func (c *EngineClient) DeleteProcessGroup(ctx context.Context, groupID string) error {
	// The current revision is not known a priori, read the group first to
	// discover it. The engine stays authoritative: if a concurrent mutation
	// advances the revision between this read and the delete, the delete is
	// rejected with a version conflict and the caller must re-issue the whole
	// read-then-delete sequence.
	path := fmt.Sprintf("/process-groups/%s", url.PathEscape(groupID))

	entity := groupEntityJSON{}
	err := c.call(ctx, "get_process_group", http.MethodGet, path, nil, &entity)
	if err != nil {
		return err
	}

	if entity.Revision == nil || entity.Revision.Version == nil {
		return fmt.Errorf("revision version is not an integer: %w", model.ErrProtocol)
	}
	version := *entity.Revision.Version

	deletePath := fmt.Sprintf("/process-groups/%s?version=%d", url.PathEscape(groupID), version)
	err = c.call(ctx, "delete_process_group", http.MethodDelete, deletePath, nil, nil)
	if err != nil {
		return err
	}

	c.logger.Debugf("Deleted process group %s (revision %d)", groupID, version)
	return nil
}

func (c *EngineClient) CreateProcessor(ctx context.Context, groupID, processorType string, config map[string]string) (string, error) {
	if groupID == "" {
		return "", fmt.Errorf("group id is required: %w", model.ErrNotValid)
	}
	if processorType == "" {
		return "", fmt.Errorf("processor type is required: %w", model.ErrNotValid)
	}

	reqBody := createProcessorRequestJSON{
		Revision: revisionJSON{Version: int64Ptr(0)},
		Component: processorComponentJSON{
			Type:           processorType,
			Position:       newProcessorPosition,
			Configurations: config,
		},
	}

	path := fmt.Sprintf("/process-groups/%s/processors", url.PathEscape(groupID))

	entity := createdEntityJSON{}
	err := c.call(ctx, "create_processor", http.MethodPost, path, reqBody, &entity)
	if err != nil {
		return "", err
	}

	if entity.ID == nil {
		return "", fmt.Errorf("id is not a string: %w", model.ErrProtocol)
	}

	c.logger.Debugf("Created processor %q in group %s: %s", processorType, groupID, *entity.ID)
	return *entity.ID, nil
}

func (c *EngineClient) SetProcessorState(ctx context.Context, processorID string, state model.ProcessorState) error {
	if state != model.ProcessorStateRunning && state != model.ProcessorStateStopped {
		return fmt.Errorf("processor state %q can't be requested: %w", state, model.ErrNotValid)
	}

	// The revision is asserted as 0 without reading the processor first. This
	// matches the engine's observed usage contract: it only works on
	// processors that have never been mutated, any processor past revision 0
	// gets a version conflict on this call.
	reqBody := runStatusRequestJSON{
		Revision:  requestRevisionJSON{Version: 0},
		Component: runStatusComponentJSON{State: string(state)},
	}

	path := fmt.Sprintf("/processors/%s/run-status", url.PathEscape(processorID))

	err := c.call(ctx, "set_processor_state", http.MethodPut, path, reqBody, nil)
	if err != nil {
		return err
	}

	c.logger.Debugf("Set processor %s state to %s", processorID, state)
	return nil
}

func (c *EngineClient) DeleteProcessor(ctx context.Context, processorID string) error {
	// Unlike process groups, processors are deleted without asserting any
	// revision, the engine's default handling applies. Observed usage
	// contract, kept as is.
	path := fmt.Sprintf("/processors/%s", url.PathEscape(processorID))

	err := c.call(ctx, "delete_processor", http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}

	c.logger.Debugf("Deleted processor %s", processorID)
	return nil
}

// StartFlow starts a flow. A flow is modeled as exactly one processor, so the
// flow id is that processor's id.
func (c *EngineClient) StartFlow(ctx context.Context, flowID string) error {
	return c.SetProcessorState(ctx, flowID, model.ProcessorStateRunning)
}

// StopFlow stops a flow, same id aliasing as StartFlow.
func (c *EngineClient) StopFlow(ctx context.Context, flowID string) error {
	return c.SetProcessorState(ctx, flowID, model.ProcessorStateStopped)
}

// DeleteFlow deletes a flow. Deleting a flow means deleting its process
// group, so the flow id is that group's id.
func (c *EngineClient) DeleteFlow(ctx context.Context, flowID string) error {
	return c.DeleteProcessGroup(ctx, flowID)
}

// call issues a single HTTP exchange against the engine and decodes the
// response into respBody when received. It maps every failure into the
// client error taxonomy:
//   - model.ErrTransport: the engine can't be reached or returns an
//     unexpected HTTP status.
//   - model.ErrVersionConflict: the engine rejects the mutation because the
//     asserted revision is stale (HTTP 409).
//   - model.ErrProtocol: the response body doesn't match the expected schema.
func (c *EngineClient) call(ctx context.Context, operation, method, path string, reqBody, respBody interface{}) (err error) {
	start := time.Now()
	defer func() {
		c.metrics.ObserveEngineOperation(operation, errToMetricResult(err), time.Since(start))
	}()

	var body io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("could not marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %v: %w", operation, err, model.ErrTransport)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read response body: %v: %w", err, model.ErrTransport)
	}

	switch {
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("engine rejected %s (stale revision): %w", operation, model.ErrVersionConflict)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("engine returned status %d on %s: %w", resp.StatusCode, operation, model.ErrTransport)
	}

	if respBody != nil {
		if err := json.Unmarshal(data, respBody); err != nil {
			return fmt.Errorf("could not decode %s response: %v: %w", operation, err, model.ErrProtocol)
		}
	}

	return nil
}

func errToMetricResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, model.ErrVersionConflict):
		return "version_conflict"
	case errors.Is(err, model.ErrProtocol):
		return "protocol_error"
	case errors.Is(err, model.ErrTransport):
		return "transport_error"
	default:
		return "error"
	}
}

func int64Ptr(v int64) *int64 { return &v }
