package sfmc

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"text/template"
)

const contentTypeSOAP = "text/xml; charset=utf-8"

// Filter 是 Retrieve 请求的过滤条件。SimpleFilter 表达单个比较，
// ComplexFilter 以逻辑运算符组合左右子树，可任意嵌套。
type Filter interface {
	render(sb *strings.Builder, tag string)
}

// SimpleFilter 表示 property op value 形式的过滤。
type SimpleFilter struct {
	Property string
	Operator string
	Value    string
}

// ComplexFilter 表示 {left, logicalOperator, right} 形式的组合过滤。
type ComplexFilter struct {
	Left            Filter
	LogicalOperator string
	Right           Filter
}

func (f SimpleFilter) render(sb *strings.Builder, tag string) {
	sb.WriteString(fmt.Sprintf(`<%s xsi:type="SimpleFilterPart">`, tag))
	sb.WriteString("<Property>")
	xmlEscape(sb, f.Property)
	sb.WriteString("</Property><SimpleOperator>")
	xmlEscape(sb, f.Operator)
	sb.WriteString("</SimpleOperator><Value>")
	xmlEscape(sb, f.Value)
	sb.WriteString("</Value>")
	sb.WriteString(fmt.Sprintf("</%s>", tag))
}

func (f ComplexFilter) render(sb *strings.Builder, tag string) {
	sb.WriteString(fmt.Sprintf(`<%s xsi:type="ComplexFilterPart">`, tag))
	f.Left.render(sb, "LeftOperand")
	sb.WriteString("<LogicalOperator>")
	xmlEscape(sb, f.LogicalOperator)
	sb.WriteString("</LogicalOperator>")
	f.Right.render(sb, "RightOperand")
	sb.WriteString(fmt.Sprintf("</%s>", tag))
}

func xmlEscape(sb *strings.Builder, s string) {
	_ = xml.EscapeText(sb, []byte(s))
}

// envelopeTmpl 是 Retrieve 请求的外层骨架，fueloauth 凭证放在 SOAP header。
var envelopeTmpl = template.Must(template.New("retrieve").Parse(strings.TrimSpace(`
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <soapenv:Header>
    <fueloauth xmlns="http://exacttarget.com">{{.Token}}</fueloauth>
  </soapenv:Header>
  <soapenv:Body>
    <RetrieveRequestMsg xmlns="http://exacttarget.com/wsdl/partnerAPI">
      <RetrieveRequest>
        <ObjectType>{{.ObjectType}}</ObjectType>
{{.Properties}}{{.Filter}}      </RetrieveRequest>
    </RetrieveRequestMsg>
  </soapenv:Body>
</soapenv:Envelope>
`)))

// BuildRetrieveEnvelope 按对象类型构造 Retrieve 请求报文。filter 可为 nil。
func BuildRetrieveEnvelope(token, objectType string, properties []string, filter Filter) (string, error) {
	var props strings.Builder
	for _, p := range properties {
		props.WriteString("        <Properties>")
		xmlEscape(&props, p)
		props.WriteString("</Properties>\n")
	}
	var filterXML strings.Builder
	if filter != nil {
		filterXML.WriteString("        ")
		filter.render(&filterXML, "Filter")
		filterXML.WriteString("\n")
	}

	var tokenEsc strings.Builder
	xmlEscape(&tokenEsc, token)
	var objEsc strings.Builder
	xmlEscape(&objEsc, objectType)

	var sb strings.Builder
	err := envelopeTmpl.Execute(&sb, map[string]string{
		"Token":      tokenEsc.String(),
		"ObjectType": objEsc.String(),
		"Properties": props.String(),
		"Filter":     filterXML.String(),
	})
	if err != nil {
		return "", fmt.Errorf("渲染 %s envelope 失败: %w", objectType, err)
	}
	return sb.String(), nil
}

// retrieveEnvelope 描述 RetrieveResponseMsg 的嵌套结构。Results 为重复元素，
// 单条结果与多条结果在 XML 层天然归一为 slice，缺失时得到空 slice。
type retrieveEnvelope[T any] struct {
	XMLName xml.Name
	Body    struct {
		Response struct {
			OverallStatus string `xml:"OverallStatus"`
			RequestID     string `xml:"RequestID"`
			Results       []T    `xml:"Results"`
		} `xml:"RetrieveResponseMsg"`
	} `xml:"Body"`
}

// ParseRetrieveResponse 将 Retrieve 响应解析为记录列表。结构损坏返回
// ParseError；OverallStatus 为 Error 时视为接口级失败。
func ParseRetrieveResponse[T any](objectType string, data []byte) ([]T, error) {
	var env retrieveEnvelope[T]
	if err := xml.Unmarshal(data, &env); err != nil {
		return nil, &ParseError{ObjectType: objectType, Err: err}
	}
	status := env.Body.Response.OverallStatus
	if strings.HasPrefix(status, "Error") {
		return nil, fmt.Errorf("sfmc: retrieve %s 失败: %s", objectType, status)
	}
	if env.Body.Response.Results == nil {
		return []T{}, nil
	}
	return env.Body.Response.Results, nil
}

// retrieve 构造 envelope、执行调用并解析为 T 列表。
func retrieve[T any](ctx context.Context, c *Client, objectType string, properties []string, filter Filter) ([]T, error) {
	token, err := c.tokenSource.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取 token 失败: %w", err)
	}
	envelope, err := BuildRetrieveEnvelope(token, objectType, properties, filter)
	if err != nil {
		return nil, err
	}
	data, err := c.call(ctx, http.MethodPost, c.soapEndpoint, []byte(envelope), contentTypeSOAP)
	if err != nil {
		return nil, fmt.Errorf("retrieve %s 失败: %w", objectType, err)
	}
	return ParseRetrieveResponse[T](objectType, data)
}
