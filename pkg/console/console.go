package console

import (
	"fmt"
	"strings"

	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
	"github.com/diillson/finsight-dashboard-go/internal/shared/types"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

// barWidth is the length of the longest bar in a chart.
const barWidth = 40

// Console é uma implementação do ConsoleInterface.
type Console struct{}

// NewConsole cria um novo Console.
func NewConsole() *Console {
	return &Console{}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// Cores predefinidas para uso consistente
var (
	BrightMagenta = color.New(color.FgMagenta, color.Bold).SprintFunc()
	BrightGreen   = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightYellow  = color.New(color.FgYellow, color.Bold).SprintFunc()
	BrightRed     = color.New(color.FgRed, color.Bold).SprintFunc()
	BrightCyan    = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// seriesPaint maps a series colour onto the terminal colour used to draw it.
func seriesPaint(c entity.SeriesColor) func(a ...interface{}) string {
	if c == entity.ColorGreen {
		return BrightGreen
	}
	return BrightRed
}

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		_ = h.spinner.Stop()
	}
}

// progressHandle é uma implementação do ProgressHandle.
type progressHandle struct {
	bar *pterm.ProgressbarPrinter
}

func (c *Console) ProgressWithTotal(total int, title string) types.ProgressHandle {
	bar, _ := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle(title).
		WithShowElapsedTime(true).
		WithShowCount(true).
		WithRemoveWhenDone(false).
		Start()
	return &progressHandle{bar: bar}
}

// Increment incrementa a barra de progresso.
func (h *progressHandle) Increment() {
	if h.bar != nil {
		h.bar.Increment()
	}
}

// Stop pára a barra de progresso.
func (h *progressHandle) Stop() {
	if h.bar != nil {
		_, _ = h.bar.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

// barLength scales value against max onto [0, barWidth].
func barLength(value, max decimal.Decimal) int {
	if !max.IsPositive() || !value.IsPositive() {
		return 0
	}
	n := int(value.Div(max).Mul(decimal.NewFromInt(barWidth)).Round(0).IntPart())
	if n == 0 {
		return 1
	}
	if n > barWidth {
		return barWidth
	}
	return n
}

func maxOf(values []decimal.Decimal) decimal.Decimal {
	max := decimal.Zero
	for _, v := range values {
		if v.GreaterThan(max) {
			max = v
		}
	}
	return max
}

// DisplayCategoryBreakdown exibe o gasto por categoria como barras horizontais.
func (c *Console) DisplayCategoryBreakdown(period entity.Period, chart entity.PieChart) {
	if len(chart.Labels) == 0 {
		pterm.Warning.Printfln("No spending recorded for %s", period.Label())
		return
	}

	max := maxOf(chart.Values)
	total := chart.Total()
	tableData := pterm.TableData{{"Category", "Amount", "Share", ""}}
	for i, label := range chart.Labels {
		value := chart.Values[i]
		share := "-"
		if total.IsPositive() {
			share = value.Div(total).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
		}
		tableData = append(tableData, []string{
			label,
			value.StringFixed(2),
			share,
			pterm.FgBlue.Sprint(strings.Repeat("█", barLength(value, max))),
		})
	}
	tableData = append(tableData, []string{BrightCyan("Total"), BrightCyan(total.StringFixed(2)), "", ""})

	table, _ := pterm.DefaultTable.WithHasHeader().WithData(tableData).Srender()
	panel := pterm.DefaultBox.
		WithTitle(fmt.Sprintf("Spending by Category: %s", period.Label())).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		Sprint(table)
	fmt.Println("\n" + panel)
}

// DisplayWeeklySeries exibe poupança e despesas por semana. Verde é poupança, vermelho é despesa.
func (c *Console) DisplayWeeklySeries(period entity.Period, series entity.StackedSeries) {
	if len(series.Bars) == 0 {
		pterm.Warning.Printfln("No weekly data recorded for %s", period.Label())
		return
	}

	values := make([]decimal.Decimal, len(series.Bars))
	for i, bar := range series.Bars {
		values[i] = bar.Y
	}
	max := maxOf(values)

	tableData := pterm.TableData{{"Week", "Type", "Amount", ""}}
	for _, bar := range series.Bars {
		paint := seriesPaint(bar.Color)
		tableData = append(tableData, []string{
			bar.X,
			paint(string(bar.Type)),
			bar.Y.StringFixed(2),
			paint(strings.Repeat("█", barLength(bar.Y, max))),
		})
	}

	title := series.Title
	if title == "" {
		title = period.Label()
	}
	table, _ := pterm.DefaultTable.WithHasHeader().WithData(tableData).Srender()
	panel := pterm.DefaultBox.
		WithTitle(fmt.Sprintf("Savings vs Expenses: %s", title)).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		Sprint(table)
	fmt.Println("\n" + panel)
}

// DisplayAnalysis exibe o relatório de análise. Sugestões só aparecem quando existem.
func (c *Console) DisplayAnalysis(target entity.AnalysisTarget, result entity.AnalysisResult) {
	table := c.CreateTable()
	table.AddColumn("Metric")
	table.AddColumn("Value")
	for _, f := range result.Fields() {
		table.AddRow(f.Label, f.Value)
	}

	content := table.Render()
	if result.HasSuggestions() {
		var b strings.Builder
		b.WriteString(BrightYellow("Suggestions"))
		for _, s := range result.Suggestions {
			b.WriteString("\n  • " + s)
		}
		content += "\n" + b.String()
	}

	panel := pterm.DefaultBox.
		WithTitle(fmt.Sprintf("Financial Analysis (%d%% spending / %d%% saving)", target.SpendingPct, target.SavingPct)).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		Sprint(content)
	fmt.Println("\n" + panel)
}

// DisplayReceipt exibe os campos extraídos de um recibo.
func (c *Console) DisplayReceipt(details entity.ReceiptDetails) {
	fmt.Println(c.receiptTable(details).Render())
}

// receiptTable monta a tabela do recibo. Campos ausentes ficam vazios.
func (c *Console) receiptTable(details entity.ReceiptDetails) *Table {
	table := c.CreateTable().(*Table)
	table.AddColumn("Field")
	table.AddColumn("Value")
	table.AddRow("Date", details.Date)
	table.AddRow("Brand", details.Brand)
	table.AddRow("Total Cost", details.TotalCost)
	table.AddRow("Category", details.Category)
	return table
}

// DisplayChatMessage exibe uma entrada da conversa.
func (c *Console) DisplayChatMessage(msg entity.ChatMessage) {
	if msg.Role == entity.RoleUser {
		fmt.Printf("%s %s\n", BrightCyan("you>"), msg.Text)
		return
	}
	fmt.Printf("%s %s\n", BrightMagenta("bot>"), msg.Text)
}
