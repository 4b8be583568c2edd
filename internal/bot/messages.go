package bot

// Fixed user-facing messages. The bot speaks Spanish; keep the wording
// stable since users recognize these replies.
const (
	welcomeMessage = "👋 ¡Hola! Soy Dacarsoft Asistente Financiero Bot.\n\n" +
		"Te ayudaré a registrar tus gastos, ingresos, presupuestos, ahorros e inversiones.\n\n" +
		"📝 Simplemente envíame mensajes como:\n" +
		"• \"Gasté 50 mil en comida\"\n" +
		"• \"Recibí 100 mil de salario\"\n" +
		"• \"Presupuesto de 300 mil para transporte\"\n\n" +
		"Usa /help para ver más información."

	helpMessage = "🤖 *Cómo usar el bot*\n\n" +
		"Envíame mensajes en lenguaje natural sobre tus finanzas:\n\n" +
		"*Gastos:*\n" +
		"• Gasté 50 mil en comida\n" +
		"• Pagué 15000 en Uber\n" +
		"• Compré ropa por 80 mil\n\n" +
		"*Ingresos:*\n" +
		"• Recibí 100 mil de salario\n" +
		"• Ingreso de 250k por freelance\n\n" +
		"*Presupuestos:*\n" +
		"• Presupuesto de 300 mil para transporte\n" +
		"• Presupuesto mensual de 1 millón para arriendo\n\n" +
		"*Ahorros e Inversiones:* 💰\n" +
		"• Ahorré 100 mil en el banco\n" +
		"• Invertí 500 mil en CDT\n" +
		"• Guardé 200k en Davivienda\n\n" +
		"*Comandos disponibles:*\n" +
		"/start - Iniciar el bot\n" +
		"/help - Ver esta ayuda\n" +
		"/stats - Ver estadísticas (próximamente)\n\n" +
		"💡 *Tip:* Puedes usar \"mil\", \"k\" o números directos"

	statsMessage = "📊 *Estadísticas*\n\n" +
		"Esta función estará disponible próximamente.\n\n" +
		"Aquí podrás ver:\n" +
		"• Total de gastos\n" +
		"• Total de ingresos\n" +
		"• Presupuesto vs. gastos reales\n" +
		"• Gastos por categoría"

	clarificationMessage = "❌ Lo siento, no pude entender tu mensaje.\n\n" +
		"Por favor, intenta con un mensaje como:\n" +
		"• \"Gasté 50 mil en comida\"\n" +
		"• \"Recibí 100 mil de salario\"\n" +
		"• \"Presupuesto de 300 mil para transporte\"\n" +
		"• \"Ahorré 100 mil en el banco\" 💰\n\n" +
		"Usa /help para ver más ejemplos."

	saveFailedMessage = "❌ Error al guardar el registro.\n\n" +
		"Por favor, intenta de nuevo o contacta al administrador."

	unexpectedErrorMessage = "❌ Ocurrió un error inesperado.\n\n" +
		"El equipo técnico ha sido notificado."
)
