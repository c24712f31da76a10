package edge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const viewerEvent = `{
  "Records": [{
    "cf": {
      "config": {"distributionId": "EDFDVBD6EXAMPLE", "eventType": "viewer-request"},
      "request": {
        "clientIp": "203.0.113.178",
        "method": "GET",
        "uri": "/about/",
        "querystring": "",
        "headers": {"host": [{"key": "Host", "value": "blog.example.com"}]}
      }
    }
  }]
}`

func TestHandle_DecodesCloudFrontEvent(t *testing.T) {
	var ev Event
	require.NoError(t, json.Unmarshal([]byte(viewerEvent), &ev))

	res, err := Handle(ViewerRequestRules("blog.example.com"), ev)
	require.NoError(t, err)

	out, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"status": "301",
		"statusDescription": "Moved Permanently",
		"headers": {"location": [{"key": "Location", "value": "https://blog.example.com/about"}]}
	}`, string(out))
}

func TestHandle_ForwardsRewrittenRequest(t *testing.T) {
	ev := Event{Records: []Record{{CF: CloudFront{Request: NewRequest("blog.example.com", "/about", "")}}}}

	res, err := Handle(OriginRequestRules("blog.example.com", StyleIndex), ev)
	require.NoError(t, err)

	out, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"method": "GET",
		"uri": "/about/index.html",
		"querystring": "",
		"headers": {"host": [{"key": "Host", "value": "blog.example.com"}]}
	}`, string(out))
}

func TestHandle_NoRecords(t *testing.T) {
	_, err := Handle(ViewerRequestRules("blog.example.com"), Event{})
	require.ErrorIs(t, err, ErrNoRecords)
}

func TestRulesForPhase(t *testing.T) {
	viewer, err := RulesForPhase(PhaseViewerRequest, "blog.example.com", StyleHTML)
	require.NoError(t, err)
	assert.Equal(t, ViewerRequestRules("blog.example.com"), viewer)

	origin, err := RulesForPhase(PhaseOriginRequest, "blog.example.com", StyleHTML)
	require.NoError(t, err)
	assert.Equal(t, OriginRequestRules("blog.example.com", StyleHTML), origin)

	_, err = RulesForPhase("viewer-response", "blog.example.com", StyleIndex)
	assert.Error(t, err)
}
