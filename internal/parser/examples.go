package parser

// ExampleMessages is a corpus of representative Spanish finance messages
// used by the CLI and by manual smoke testing against the live model.
func ExampleMessages() []string {
	return []string{
		// Operational transactions
		"Gasté 50 mil en comida",
		"Recibí 100 mil de salario",
		"Presupuesto de 300 mil para transporte",
		"Pagué 15000 en Uber",
		"Ingreso de 250k por freelance",
		"Compré ropa por 80 mil",
		"Presupuesto mensual de 1 millón para arriendo",
		// Capital movements
		"Ahorré 100 mil en el banco",
		"Invertí 500 mil en CDT",
		"Guardé 200k en Davivienda",
		"Inversión de 1 millón en acciones",
		"Ahorré 50 mil para emergencias",
	}
}
