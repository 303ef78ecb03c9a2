package sfmc

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildRetrieveEnvelopeSimpleFilter(t *testing.T) {
	envelope, err := BuildRetrieveEnvelope("tok", "DataFolder", []string{"ID", "Name"},
		SimpleFilter{Property: "IsActive", Operator: "equals", Value: "true"})
	if err != nil {
		t.Fatalf("build envelope: %v", err)
	}
	for _, want := range []string{
		"<fueloauth xmlns=\"http://exacttarget.com\">tok</fueloauth>",
		"<ObjectType>DataFolder</ObjectType>",
		"<Properties>ID</Properties>",
		"<Properties>Name</Properties>",
		`<Filter xsi:type="SimpleFilterPart">`,
		"<Property>IsActive</Property>",
		"<SimpleOperator>equals</SimpleOperator>",
		"<Value>true</Value>",
	} {
		if !strings.Contains(envelope, want) {
			t.Fatalf("envelope missing %q:\n%s", want, envelope)
		}
	}
}

func TestBuildRetrieveEnvelopeComplexFilter(t *testing.T) {
	filter := ComplexFilter{
		Left:            SimpleFilter{Property: "CustomerKey", Operator: "equals", Value: "a"},
		LogicalOperator: "OR",
		Right: ComplexFilter{
			Left:            SimpleFilter{Property: "Name", Operator: "equals", Value: "b"},
			LogicalOperator: "AND",
			Right:           SimpleFilter{Property: "Name", Operator: "like", Value: "c"},
		},
	}
	envelope, err := BuildRetrieveEnvelope("tok", "TriggeredSendDefinition", []string{"CustomerKey"}, filter)
	if err != nil {
		t.Fatalf("build envelope: %v", err)
	}
	for _, want := range []string{
		`<Filter xsi:type="ComplexFilterPart">`,
		`<LeftOperand xsi:type="SimpleFilterPart">`,
		`<RightOperand xsi:type="ComplexFilterPart">`,
		"<LogicalOperator>OR</LogicalOperator>",
		"<LogicalOperator>AND</LogicalOperator>",
	} {
		if !strings.Contains(envelope, want) {
			t.Fatalf("envelope missing %q:\n%s", want, envelope)
		}
	}
}

func TestBuildRetrieveEnvelopeEscapesValues(t *testing.T) {
	envelope, err := BuildRetrieveEnvelope("tok", "DataExtension", nil,
		SimpleFilter{Property: "Name", Operator: "equals", Value: `a<b&"c"`})
	if err != nil {
		t.Fatalf("build envelope: %v", err)
	}
	if strings.Contains(envelope, `a<b`) {
		t.Fatalf("value not escaped:\n%s", envelope)
	}
	if !strings.Contains(envelope, "a&lt;b&amp;") {
		t.Fatalf("escaped value missing:\n%s", envelope)
	}
}

const retrieveResponseXML = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <RetrieveResponseMsg xmlns="http://exacttarget.com/wsdl/partnerAPI">
      <OverallStatus>OK</OverallStatus>
      <RequestID>abc</RequestID>
      <Results>
        <ObjectID>DE1</ObjectID>
        <CustomerKey>orders_key</CustomerKey>
        <Name>Orders</Name>
        <CategoryID>10</CategoryID>
        <IsSendable>true</IsSendable>
      </Results>
      <Results>
        <ObjectID>DE2</ObjectID>
        <Name>Customers</Name>
        <CategoryID>10</CategoryID>
        <IsSendable>false</IsSendable>
      </Results>
    </RetrieveResponseMsg>
  </soap:Body>
</soap:Envelope>`

func TestParseRetrieveResponseMultiple(t *testing.T) {
	results, err := ParseRetrieveResponse[DataExtensionResult]("DataExtension", []byte(retrieveResponseXML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expect 2 results, got %d", len(results))
	}
	if results[0].ObjectID != "DE1" || results[0].Name != "Orders" || !results[0].IsSendable {
		t.Fatalf("unexpected first result %+v", results[0])
	}
}

func TestParseRetrieveResponseSingleNormalizesToSlice(t *testing.T) {
	xmlBody := `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>
<RetrieveResponseMsg><OverallStatus>OK</OverallStatus>
<Results><ObjectID>DE1</ObjectID><Name>Orders</Name></Results>
</RetrieveResponseMsg></soap:Body></soap:Envelope>`
	results, err := ParseRetrieveResponse[DataExtensionResult]("DataExtension", []byte(xmlBody))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expect 1 result, got %d", len(results))
	}
}

func TestParseRetrieveResponseEmptyResults(t *testing.T) {
	xmlBody := `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>
<RetrieveResponseMsg><OverallStatus>OK</OverallStatus></RetrieveResponseMsg>
</soap:Body></soap:Envelope>`
	results, err := ParseRetrieveResponse[DataExtensionResult]("DataExtension", []byte(xmlBody))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Fatalf("expect empty slice, got %#v", results)
	}
}

func TestParseRetrieveResponseMalformed(t *testing.T) {
	_, err := ParseRetrieveResponse[DataExtensionResult]("DataExtension", []byte("<not-xml"))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.ObjectType != "DataExtension" {
		t.Fatalf("parse error missing object type: %+v", parseErr)
	}
	if retryable(err) {
		t.Fatalf("parse errors must not be retryable")
	}
}
