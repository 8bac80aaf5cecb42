package types

import "github.com/diillson/finsight-dashboard-go/internal/domain/entity"

// ConsoleInterface define a interface para saída no console.
type ConsoleInterface interface {
	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})

	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})

	Status(message string) StatusHandle
	ProgressWithTotal(total int, title string) ProgressHandle

	CreateTable() TableInterface

	// Dashboard views
	DisplayCategoryBreakdown(period entity.Period, chart entity.PieChart)
	DisplayWeeklySeries(period entity.Period, series entity.StackedSeries)
	DisplayAnalysis(target entity.AnalysisTarget, result entity.AnalysisResult)
	DisplayReceipt(details entity.ReceiptDetails)
	DisplayChatMessage(msg entity.ChatMessage)
}

// StatusHandle é uma interface para atualizar uma mensagem de status.
type StatusHandle interface {
	Update(message string)
	Stop()
}

// ProgressHandle é uma interface para atualizar uma barra de progresso.
type ProgressHandle interface {
	Increment()
	Stop()
}

// TableInterface define a interface para criar e manipular tabelas.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}
