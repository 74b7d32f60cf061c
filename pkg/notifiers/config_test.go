package notifiers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notifiers.yaml")
	raw := `
sinks:
  - id: hook1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: queue
    type: sqs
    sqs:
      uri: https://sqs.us-east-1.amazonaws.com/000000000000/heroes
      region: us-east-1
  - id: console
    type: LOG
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 2 || enabled[0].ID != "queue" || enabled[1].Type != TypeLog {
		t.Fatalf("unexpected enabled sinks %#v", enabled)
	}
	queue, ok := reg.byID("queue")
	if !ok || queue.SQS.Region != "us-east-1" {
		t.Fatalf("inline aws config not decoded: %#v", queue.SQS)
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notifiers.json")
	raw := `{"sinks":[{"id":"topic","type":"sns","sns":{"topic_arn":"arn:aws:sns:eu-west-1:1:heroes","region":"eu-west-1"}}]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	cfg, ok := reg.byID("topic")
	if !ok || cfg.SNS.TopicARN != "arn:aws:sns:eu-west-1:1:heroes" || cfg.SNS.Region != "eu-west-1" {
		t.Fatalf("unexpected sns config %#v", cfg.SNS)
	}
}

func TestLoadRegistryRejectsDuplicateIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notifiers.yaml")
	raw := `
sinks:
  - id: console
    type: log
  - id: console
    type: log
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestValidateSinkConfigRejectsMissingBlocks(t *testing.T) {
	for _, cfg := range []SinkConfig{
		{ID: "h1", Type: TypeHTTP},
		{ID: "q1", Type: TypeSQS, SQS: &SQSSinkConfig{QueueURL: "https://example.com/q"}},
		{ID: "s1", Type: TypeSNS},
		{ID: "p1", Type: TypePubSub, PubSub: &PubSubSinkConfig{ProjectID: "p"}},
	} {
		if err := validateSinkConfig(cfg); err == nil {
			t.Fatalf("expected validation error for %s", cfg.ID)
		}
	}
}
