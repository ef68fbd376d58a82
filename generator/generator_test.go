package generator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/parser"
	"github.com/erraggy/sdkgen/project"
	"github.com/erraggy/sdkgen/sdkerrors"
)

const tsHeader = `/**
 * AcmeBilling for TypeScript
 *
 * (c) 2021-2024 Acme Corp
 *
 * For the full copyright and license information, please view the LICENSE
 * file that was distributed with this source code.
 *
 * @author     Acme DevRel <sdk@acme.example>
 * @copyright  2021-2024 Acme Corp
 * @link       https://github.com/acme/billing-ts
 */
`

func TestGenerateInvoiceTypeScript(t *testing.T) {
	result := generateFixture(t, "invoice.json", t.TempDir())

	model := fileContent(t, result, project.TypeScript, "src/models/Invoice.ts")
	want := tsHeader + `
/**
 * An invoice sent to a customer.
 */
export type Invoice = {

  /**
   * The unique ID of this invoice
   */
  invoiceId: string;

  /**
   * The total amount
   */
  amount: number | null;
};
`
	assert.Equal(t, want, model)

	client := fileContent(t, result, project.TypeScript, "src/clients/InvoicesClient.ts")
	assert.True(t, strings.HasPrefix(client, tsHeader+"\n"))
	for _, line := range []string{
		`import { AcmeBillingClient } from "..";`,
		`import { AcmeResult } from "..";`,
		`import { Invoice } from "..";`,
		"export class InvoicesClient {",
		"  /**\n   * Retrieves one invoice.\n   * Returns 404 when missing.\n   *\n   * @param id The unique ID of the invoice\n   */\n",
		"  retrieveInvoice(id: string): Promise<AcmeResult<Invoice>> {",
		"    const url = `/invoices/${id}`;",
		`    return this.client.request<Invoice>("GET", url, null, null);`,
	} {
		assert.Contains(t, client, line)
	}
	assert.NotContains(t, client, "const options")
}

func TestGenerateInvoiceAllLanguages(t *testing.T) {
	result := generateFixture(t, "invoice.json", t.TempDir())
	require.False(t, result.HasErrors())
	require.Len(t, result.Outputs, 5)

	tests := []struct {
		lang string
		path string
		want []string
	}{
		{
			lang: project.CSharp,
			path: "src/Models/Invoice.cs",
			want: []string{
				"/***\n * AcmeBilling for C#\n",
				"namespace Acme.Billing.Models",
				"    /// <summary>\n    /// An invoice sent to a customer.\n    /// </summary>\n    public class Invoice",
				"        public Guid? InvoiceId { get; set; }",
				"        public decimal? Amount { get; set; }",
			},
		},
		{
			lang: project.CSharp,
			path: "src/Clients/InvoicesClient.cs",
			want: []string{
				"using Acme.Billing.Models;",
				"        public async Task<AcmeResult<Invoice>> RetrieveInvoice(Guid id)",
				`            var url = $"/invoices/{id}";`,
				`        /// <param name="id">The unique ID of the invoice</param>`,
				"            return await _client.Request<Invoice>(HttpMethod.Get, url, null, null, null);",
			},
		},
		{
			lang: project.Java,
			path: "src/main/java/com/acme/billing/models/Invoice.java",
			want: []string{
				"package com.acme.billing.models;",
				"import org.jetbrains.annotations.NotNull;",
				"public class Invoice\n{",
				"    private @NotNull String invoiceId;",
				"    private @Nullable Double amount;",
				"    public @Nullable Double getAmount() { return this.amount; }",
				"    public void setAmount(@Nullable Double value) { this.amount = value; }",
				"     * @return The field amount",
			},
		},
		{
			lang: project.Java,
			path: "src/main/java/com/acme/billing/clients/InvoicesClient.java",
			want: []string{
				"package com.acme.billing.clients;",
				"import com.acme.billing.models.Invoice;",
				"    public @NotNull AcmeResult<Invoice> retrieveInvoice(@NotNull String id)",
				`        RestRequest<Invoice> r = new RestRequest<Invoice>(this.client, "GET", "/invoices/{id}");`,
				`        r.AddPath("{id}", id.toString());`,
				"        return r.Call(Invoice.class);",
			},
		},
		{
			lang: project.Python,
			path: "src/acme_billing/models/invoice.py",
			want: []string{
				"#\n# AcmeBilling for Python\n#\n",
				"from dataclasses import dataclass\n\n@dataclass\nclass Invoice:\n",
				`    """` + "\n    An invoice sent to a customer.\n" + `    """`,
				"    invoiceId: str | None = None",
				"    amount: float | None = None",
			},
		},
		{
			lang: project.Python,
			path: "src/acme_billing/clients/invoices_client.py",
			want: []string{
				"from acme_billing.acme_result import AcmeResult",
				"from acme_billing.models.errorresult import ErrorResult",
				"from acme_billing.models.invoice import Invoice",
				"class InvoicesClient:",
				"    def retrieve_invoice(self, id: str) -> AcmeResult[Invoice]:",
				"        id : str\n            The unique ID of the invoice\n",
				`        path = f"/invoices/{id}"`,
				`        result = self.client.send_request("GET", path, None, None, None)`,
				"            return AcmeResult(True, result.status_code, Invoice(**result.json()), None)",
			},
		},
		{
			lang: project.Ruby,
			path: "lib/acme_billing/models/invoice.rb",
			want: []string{
				"module acme_billing",
				"    class Invoice",
				"            @invoice_id = params.dig(:invoice_id)",
				"        # @return [double] The total amount",
				"        attr_accessor :amount",
				"                'invoiceId' => @invoice_id,",
			},
		},
		{
			lang: project.Ruby,
			path: "lib/acme_billing/clients/invoices_client.rb",
			want: []string{
				"class InvoicesClient",
				"    # @param id [uuid] The unique ID of the invoice",
				"    def retrieve_invoice(id:)",
				`        path = "/invoices/#{id}"`,
				"        @connection.request(:get, path, nil, nil)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.path, func(t *testing.T) {
			content := fileContent(t, result, tt.lang, tt.path)
			for _, want := range tt.want {
				assert.Contains(t, content, want)
			}
		})
	}
}

func TestGenerateCounts(t *testing.T) {
	result := generateFixture(t, "invoice.json", t.TempDir())

	// Invoice plus the built-in ErrorResult, one client per language.
	assert.Equal(t, 10, result.GeneratedModels)
	assert.Equal(t, 5, result.GeneratedClients)
	assert.Equal(t, "2024.3.8471", result.Version.Semver)

	for _, out := range result.Outputs {
		assert.Equal(t, 2, out.Models, out.Language)
		assert.Equal(t, 1, out.Clients, out.Language)
		assert.Len(t, out.Owned, 2, out.Language)
	}
}

func TestGenerateUpload(t *testing.T) {
	result := generateFixture(t, "upload.json", t.TempDir())
	require.False(t, result.HasErrors())

	tests := []struct {
		lang string
		path string
		want []string
	}{
		{
			lang: project.TypeScript,
			path: "src/clients/AttachmentsClient.ts",
			want: []string{
				"  uploadAttachment(id: number, filename: string): Promise<AcmeResult<Attachment[]>> {",
				"    const url = `/attachments/${id}/upload`;",
				`    return this.client.fileUpload<Attachment[]>("POST", url, null, filename);`,
			},
		},
		{
			lang: project.CSharp,
			path: "src/Clients/AttachmentsClient.cs",
			want: []string{
				"        public async Task<AcmeResult<Attachment[]>> UploadAttachment(int64 id, string filename)",
				"            return await _client.Request<Attachment[]>(HttpMethod.Post, url, null, null, filename);",
			},
		},
		{
			lang: project.Java,
			path: "src/main/java/com/acme/billing/clients/AttachmentsClient.java",
			want: []string{
				"import com.acme.billing.BlobRequest;",
				"    public @NotNull AcmeResult<Attachment[]> uploadAttachment(@NotNull Long id, @NotNull byte[] filename)",
				"        r.AddFile(filename);",
				"        return r.Call(Attachment[].class);",
			},
		},
		{
			lang: project.Python,
			path: "src/acme_billing/clients/attachments_client.py",
			want: []string{
				"    def upload_attachment(self, id: int, filename: str) -> AcmeResult[list[Attachment]]:",
				`        path = f"/attachments/{id}/upload"`,
				`        result = self.client.send_request("POST", path, None, None, filename)`,
			},
		},
		{
			lang: project.Ruby,
			path: "lib/acme_billing/clients/attachments_client.rb",
			want: []string{
				"    def upload_attachment(id:, filename:)",
				`        path = "/attachments/#{id}/upload"`,
				"        @connection.request(:post, path, nil, nil, filename)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			content := fileContent(t, result, tt.lang, tt.path)
			for _, want := range tt.want {
				assert.Contains(t, content, want)
			}
		})
	}
}

func TestGenerateMutualReferences(t *testing.T) {
	result := generateFixture(t, "mutual.json", t.TempDir())
	require.False(t, result.HasErrors())

	a := fileContent(t, result, project.TypeScript, "src/models/A.ts")
	assert.Contains(t, a, `import { B } from "..";`)
	assert.Contains(t, a, "  b: B;")
	b := fileContent(t, result, project.TypeScript, "src/models/B.ts")
	assert.Contains(t, b, `import { A } from "..";`)
	assert.NotContains(t, b, `import { B }`)

	pyA := fileContent(t, result, project.Python, "src/acme_billing/models/a.py")
	assert.Contains(t, pyA, "from acme_billing.models.b import B")
	assert.NotContains(t, pyA, "__future__")

	for _, out := range result.Outputs {
		assert.Zero(t, out.Clients, out.Language)
	}
}

func TestGenerateBilling(t *testing.T) {
	result := generateFixture(t, "billing.json", t.TempDir())
	require.False(t, result.HasErrors())

	t.Run("framework types are never emitted", func(t *testing.T) {
		for _, out := range result.Outputs {
			for _, f := range out.Files {
				assert.NotContains(t, f.Path, "ProblemDetails", out.Language)
				assert.NotContains(t, string(f.Content), "ProblemDetails", f.Path)
			}
		}
	})

	t.Run("enums have no files", func(t *testing.T) {
		for _, out := range result.Outputs {
			for _, f := range out.Files {
				assert.NotContains(t, strings.ToLower(f.Path), "invoicestatus", out.Language)
				assert.NotContains(t, strings.ToLower(f.Path), "invoice_status", out.Language)
			}
		}
	})

	t.Run("typescript", func(t *testing.T) {
		model := fileContent(t, result, project.TypeScript, "src/models/Invoice.ts")
		assert.Contains(t, model, `import { InvoiceLine } from "..";`)
		assert.NotContains(t, model, "InvoiceStatus")
		assert.Contains(t, model, "  status: number;")
		assert.Contains(t, model, "  lines: InvoiceLine[];")
		assert.NotContains(t, model, "legacyCode")

		line := fileContent(t, result, project.TypeScript, "src/models/InvoiceLine.ts")
		assert.NotContains(t, line, "import")
		assert.Contains(t, line, "  parent: InvoiceLine;")

		client := fileContent(t, result, project.TypeScript, "src/clients/InvoicesClient.ts")
		for _, want := range []string{
			`import { FetchResult } from "..";`,
			`import { Blob } from "buffer";`,
			"  retrieveInvoice(id: string, include?: string): Promise<AcmeResult<Invoice>> {",
			"    const options = {\n      params: {\n        include,\n      },\n    };\n",
			`    return this.client.request<Invoice>("GET", url, options, null);`,
			"  retrieveInvoicePDF(id: string): Promise<AcmeResult<Blob>> {",
			`    return this.client.requestBlob("GET", url, null, null);`,
			"  queryInvoices(filter?: string, pageSize?: number): Promise<AcmeResult<FetchResult<Invoice>>> {",
			"  createInvoices(body: Invoice[]): Promise<AcmeResult<Invoice[]>> {",
			`    return this.client.request<Invoice[]>("POST", url, null, body);`,
		} {
			assert.Contains(t, client, want)
		}

		utility := fileContent(t, result, project.TypeScript, "src/clients/UtilityClient.ts")
		assert.Contains(t, utility, "  ping(): Promise<AcmeResult<object>> {")
	})

	t.Run("csharp", func(t *testing.T) {
		model := fileContent(t, result, project.CSharp, "src/Models/Invoice.cs")
		assert.Contains(t, model, "        public int? Status { get; set; }")
		assert.Contains(t, model, "        public string InvoiceDate { get; set; }")
		assert.Contains(t, model, "        /// "+dateOnlyNote)
		assert.Contains(t, model, "        public InvoiceLine[] Lines { get; set; }")

		client := fileContent(t, result, project.CSharp, "src/Clients/InvoicesClient.cs")
		for _, want := range []string{
			"        public async Task<AcmeResult<Invoice>> RetrieveInvoice(Guid id, string include = null)",
			`            if (include != null) { options["include"] = include; }`,
			"            return await _client.Request<Invoice>(HttpMethod.Get, url, options, null, null);",
			"        public async Task<AcmeResult<FetchResult<Invoice>>> QueryInvoices(string filter = null, int? pageSize = null)",
			"        public async Task<AcmeResult<byte[]>> RetrieveInvoicePDF(Guid id)",
			"            return await _client.Request<Invoice[]>(HttpMethod.Post, url, null, body, null);",
		} {
			assert.Contains(t, client, want)
		}
	})

	t.Run("java", func(t *testing.T) {
		client := fileContent(t, result, project.Java, "src/main/java/com/acme/billing/clients/InvoicesClient.java")
		for _, want := range []string{
			"import com.google.gson.reflect.TypeToken;",
			"import com.acme.billing.FetchResult;",
			"import com.acme.billing.BlobRequest;",
			"    public @NotNull AcmeResult<Invoice> retrieveInvoice(@NotNull String id, @Nullable String include)",
			`        r.AddQuery("include", include.toString());`,
			"    public @NotNull AcmeResult<byte[]> retrieveInvoicePDF(@NotNull String id)",
			`        BlobRequest r = new BlobRequest(this.client, "GET", "/invoices/{id}/pdf");`,
			"        return r.Call();",
			"        return r.Call(new TypeToken<FetchResult<Invoice>>() {}.getType());",
			"    public @NotNull AcmeResult<Invoice[]> createInvoices(@NotNull Invoice[] body)",
			"        r.AddBody(body);",
		} {
			assert.Contains(t, client, want)
		}

		model := fileContent(t, result, project.Java, "src/main/java/com/acme/billing/models/Invoice.java")
		assert.NotContains(t, model, "import com.acme.billing.models.")
		assert.Contains(t, model, "    private @NotNull Integer status;")
		assert.Contains(t, model, "    private @NotNull InvoiceLine[] lines;")
	})

	t.Run("python", func(t *testing.T) {
		client := fileContent(t, result, project.Python, "src/acme_billing/clients/invoices_client.py")
		for _, want := range []string{
			"from acme_billing.fetch_result import FetchResult",
			"from requests.models import Response",
			"    def retrieve_invoice(self, id: str, include: str | None = None) -> AcmeResult[Invoice]:",
			`        result = self.client.send_request("GET", path, None, {"include": include}, None)`,
			"    def retrieve_invoice_pdf(self, id: str) -> Response:",
			"    def query_invoices(self, filter: str | None = None, pageSize: int | None = None) -> AcmeResult[FetchResult[Invoice]]:",
			`        result = self.client.send_request("GET", path, None, {"filter": filter, "pageSize": pageSize}, None)`,
			"    def create_invoices(self, body: list[Invoice]) -> AcmeResult[list[Invoice]]:",
			`        result = self.client.send_request("POST", path, body, None, None)`,
		} {
			assert.Contains(t, client, want)
		}
		assert.Equal(t, 1, strings.Count(client, "import ErrorResult"))
		assert.Contains(t, client, "        return result\n")

		line := fileContent(t, result, project.Python, "src/acme_billing/models/invoiceline.py")
		assert.True(t, strings.Contains(line, "from __future__ import annotations\nfrom dataclasses import dataclass\n"))
		assert.NotContains(t, line, "import InvoiceLine")

		model := fileContent(t, result, project.Python, "src/acme_billing/models/invoice.py")
		assert.Contains(t, model, "from acme_billing.models.invoiceline import InvoiceLine")
		assert.Contains(t, model, "    lines: list[InvoiceLine] | None = None")
	})

	t.Run("ruby", func(t *testing.T) {
		client := fileContent(t, result, project.Ruby, "lib/acme_billing/clients/invoices_client.rb")
		for _, want := range []string{
			"    # @param include_param [string] Related records to include",
			"    def retrieve_invoice(id:, include_param: nil)",
			"        params = {:include => include_param}",
			"        @connection.request(:get, path, nil, params)",
			"    def create_invoices(body:)",
			"        @connection.request(:post, path, body, nil)",
		} {
			assert.Contains(t, client, want)
		}

		assert.NotNil(t, result.Output(project.Ruby).File("lib/acme_billing/models/invoice_line.rb"))
		utility := fileContent(t, result, project.Ruby, "lib/acme_billing/clients/utility_client.rb")
		assert.Contains(t, utility, "    def ping()")
	})
}

func TestGenerateBoilerplate(t *testing.T) {
	result := generateFixture(t, "billing.json", t.TempDir())

	tests := []struct {
		lang string
		path string
		want string
	}{
		{project.TypeScript, "src/AcmeBillingClient.ts", `sdkVersion = "2024.3.8471.0"`},
		{project.TypeScript, "src/index.ts", `export { UtilityClient } from "./clients/UtilityClient";`},
		{project.CSharp, "src/AcmeBillingClient.cs", "namespace Acme.Billing"},
		{project.CSharp, "AcmeBillingClient.nuspec", "<version>2024.3.8471.0</version>"},
		{project.Java, "src/main/java/com/acme/billing/AcmeBillingClient.java", "import com.acme.billing.clients.InvoicesClient;"},
		{project.Python, "src/acme_billing/acme_billing_client.py", "from acme_billing.clients.invoices_client import InvoicesClient"},
		{project.Python, "src/acme_billing/__init__.py", `__version__ = "2024.3.8471"`},
		{project.Ruby, "lib/acme_billing/acme_billing_client.rb", "require 'acme_billing/clients/invoices_client'"},
		{project.Ruby, "lib/acme_billing/acme_billing_client.rb", "def request(method, path, body, params, filename = nil)"},
		{project.Ruby, "lib/acme_billing/acme_billing_client.rb", "request.set_form([['file', file, { filename: File.basename(filename) }]], 'multipart/form-data')"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Contains(t, fileContent(t, result, tt.lang, tt.path), tt.want)
		})
	}
}

func TestGenerateIdempotent(t *testing.T) {
	root := t.TempDir()
	first := generateFixture(t, "billing.json", root)
	second := generateFixture(t, "billing.json", root)

	require.Len(t, second.Outputs, len(first.Outputs))
	for i := range first.Outputs {
		a, b := first.Outputs[i], second.Outputs[i]
		require.Equal(t, filePaths(&a), filePaths(&b))
		for j := range a.Files {
			assert.Equal(t, a.Files[j].Content, b.Files[j].Content, a.Files[j].Path)
		}
		assert.Equal(t, a.Patches, b.Patches)
	}
}

func TestGenerateUnsupported(t *testing.T) {
	invoice := apimodel.SchemaItem{Name: "Invoice", Fields: []apimodel.SchemaField{{Name: "id", DataType: "uuid"}}}

	tests := []struct {
		name     string
		endpoint apimodel.EndpointItem
		kind     string
	}{
		{
			name: "http method",
			endpoint: apimodel.EndpointItem{
				Name: "Connect", Category: "Invoices", Path: "/invoices", Method: "connect",
				ReturnDataType: apimodel.SchemaRef{DataType: "Invoice"},
			},
			kind: "http method",
		},
		{
			name: "parameter location",
			endpoint: apimodel.EndpointItem{
				Name: "List Invoices", Category: "Invoices", Path: "/invoices", Method: "get",
				ReturnDataType: apimodel.SchemaRef{DataType: "Invoice"},
				Parameters: []apimodel.ParameterField{{
					SchemaField: apimodel.SchemaField{Name: "X-Trace", DataType: "string"},
					Location:    "header",
				}},
			},
			kind: "parameter location",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := testAPI([]apimodel.SchemaItem{invoice}, tt.endpoint)
			result, err := GenerateWithOptions(
				WithAPI(api),
				WithProject(testProject(t.TempDir())),
				WithClock(fixedClock),
			)
			require.NoError(t, err)
			assert.True(t, result.HasErrors())
			assert.Equal(t, 5, result.ErrorCount)

			for _, out := range result.Outputs {
				var unsupported *sdkerrors.UnsupportedError
				require.True(t, errors.As(out.Err, &unsupported), out.Language)
				assert.Equal(t, tt.kind, unsupported.Kind)
				assert.Empty(t, out.Files)
				assert.Empty(t, out.Patches)
			}
		})
	}

	t.Run("deprecated endpoints are not checked", func(t *testing.T) {
		ep := tests[0].endpoint
		ep.Deprecated = true
		api := testAPI([]apimodel.SchemaItem{invoice}, ep)
		result, err := GenerateWithOptions(WithAPI(api), WithProject(testProject(t.TempDir())), WithClock(fixedClock))
		require.NoError(t, err)
		assert.False(t, result.HasErrors())
	})
}

type failingRenderer struct{ fail string }

func (f failingRenderer) Render(name string, _ any) ([]byte, error) {
	if strings.HasPrefix(name, f.fail) {
		return nil, errors.New("boom")
	}
	return []byte("// " + name + "\n"), nil
}

func TestGenerateRendererFailureIsIsolated(t *testing.T) {
	res := parseFixture(t, "invoice.json")
	result, err := GenerateWithOptions(
		WithParsed(*res),
		WithProject(testProject(t.TempDir())),
		WithRenderer(failingRenderer{fail: "java/"}),
		WithClock(fixedClock),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ErrorCount)

	java := result.Output(project.Java)
	require.Error(t, java.Err)
	assert.Empty(t, java.Files)

	ts := result.Output(project.TypeScript)
	require.NoError(t, ts.Err)
	assert.Equal(t, "// typescript/index.ts\n", string(ts.File("src/index.ts").Content))
	assert.Equal(t, 8, result.GeneratedModels)
}

func TestGenerateErrors(t *testing.T) {
	invoice := parseFixture(t, "invoice.json")

	t.Run("missing version", func(t *testing.T) {
		api := apimodel.New(apimodel.Version{}, nil, nil)
		_, err := GenerateWithOptions(WithAPI(api), WithProject(testProject(t.TempDir())))
		var verr *sdkerrors.VersionError
		require.True(t, errors.As(err, &verr))
	})

	t.Run("sentinel version", func(t *testing.T) {
		api := apimodel.New(apimodel.Version{Full: apimodel.NoVersion}, nil, nil)
		_, err := GenerateWithOptions(WithAPI(api), WithProject(testProject(t.TempDir())))
		var verr *sdkerrors.VersionError
		require.True(t, errors.As(err, &verr))
	})

	t.Run("invalid project", func(t *testing.T) {
		p := testProject(t.TempDir())
		p.ProjectName = ""
		_, err := GenerateWithOptions(WithParsed(*invoice), WithProject(p))
		var cerr *sdkerrors.ConfigError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, "projectName", cerr.Option)
	})

	t.Run("language not configured", func(t *testing.T) {
		p := testProject(t.TempDir())
		p.Ruby = nil
		_, err := GenerateWithOptions(WithParsed(*invoice), WithProject(p), WithLanguages(project.Ruby))
		var cerr *sdkerrors.ConfigError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, project.Ruby, cerr.Option)
	})

	t.Run("nil model", func(t *testing.T) {
		_, err := New(testProject(t.TempDir())).Generate(nil)
		require.Error(t, err)
	})
}

func TestGenerateSelectedLanguages(t *testing.T) {
	res := parseFixture(t, "invoice.json")
	result, err := GenerateWithOptions(
		WithParsed(*res),
		WithProject(testProject(t.TempDir())),
		WithLanguages(project.Python, project.TypeScript),
		WithClock(fixedClock),
	)
	require.NoError(t, err)
	require.Len(t, result.Outputs, 2)
	// Generation order is fixed regardless of the order requested.
	assert.Equal(t, project.TypeScript, result.Outputs[0].Language)
	assert.Equal(t, project.Python, result.Outputs[1].Language)
	assert.Nil(t, result.Output(project.Java))
}

func TestGenerateCarriesParseIssues(t *testing.T) {
	res := parseFixture(t, "upload.json")
	require.NotEmpty(t, res.Issues)

	result, err := GenerateWithOptions(WithParsed(*res), WithProject(testProject(t.TempDir())), WithClock(fixedClock))
	require.NoError(t, err)
	assert.Len(t, result.Issues, len(res.Issues))
	assert.Equal(t, len(res.Issues), result.InfoCount+result.WarningCount)
}

func TestApplyOptions(t *testing.T) {
	api := testAPI(nil)
	p := testProject(t.TempDir())

	tests := []struct {
		name    string
		opts    []Option
		wantErr string
	}{
		{name: "no input", opts: []Option{WithProject(p)}, wantErr: "must specify an input source"},
		{name: "two inputs", opts: []Option{WithAPI(api), WithParsed(parser.ParseResult{API: api}), WithProject(p)}, wantErr: "exactly one input source"},
		{name: "no project", opts: []Option{WithAPI(api)}, wantErr: "project"},
		{name: "unknown language", opts: []Option{WithAPI(api), WithProject(p), WithLanguages("cobol")}, wantErr: "unknown language"},
		{name: "nil clock", opts: []Option{WithAPI(api), WithProject(p), WithClock(nil)}, wantErr: "clock"},
		{name: "empty parse result", opts: []Option{WithParsed(parser.ParseResult{}), WithProject(p)}, wantErr: "no API model"},
		{name: "valid", opts: []Option{WithAPI(api), WithProject(p), WithLanguages(project.Java)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := applyOptions(tt.opts...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Same(t, api, cfg.api)
			assert.Equal(t, []string{project.Java}, cfg.languages)
		})
	}
}

func TestLookupLanguage(t *testing.T) {
	for _, key := range project.LanguageKeys {
		lang := LookupLanguage(key)
		require.NotNil(t, lang, key)
		assert.Equal(t, key, lang.Key)
	}
	assert.Nil(t, LookupLanguage("cobol"))
	assert.Len(t, Languages(), 5)
}

func TestRubyVariableName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"id", "id"},
		{"pageSize", "page_size"},
		{"include", "include_param"},
		{"class", "class_param"},
		{"end", "end_param"},
		{"filter", "filter"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RubyVariableName(tt.in), tt.in)
	}
}
