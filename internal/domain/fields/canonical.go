package fields

// Field is a canonical attribute name.
type Field string

// Canonical fields read from source rows.
const (
	Name            Field = "name"
	LogoURL         Field = "logo_url"
	Recommendations Field = "recommendations"
	DeclaredTotal   Field = "declared_total"

	FirstResponseTime Field = "first_response_time"
	BrokerHandoffTime Field = "broker_handoff_time"

	FirstResponse Field = "first_response"
	BrokerHandoff Field = "broker_handoff"
	AverageSpeed  Field = "average_speed"

	Personalization     Field = "personalization"
	Professionalism     Field = "professionalism"
	ClientQualification Field = "client_qualification"
	Explanations        Field = "explanations"

	QuantitySent      Field = "quantity_sent"
	CriteriaAdherence Field = "criteria_adherence"
	MaterialQuality   Field = "material_quality"

	Persistence     Field = "persistence"
	FollowUpQuality Field = "follow_up_quality"
	FollowUpCount   Field = "follow_up_count"

	Adaptability      Field = "adaptability"
	ObjectionHandling Field = "objection_handling"
	OverallEfficiency Field = "overall_efficiency"

	ItemsSentFlag  Field = "items_sent"
	ItemsSentCount Field = "items_sent_count"
)

// Aliases lists, per canonical field, the column names seen in the source
// sheets, most specific first.
var Aliases = map[Field][]string{
	Name:            {"Nome", "nome", "NOME", "Imobiliária", "IMOBILIÁRIA", "imobiliaria", "IMOBILIARIA"},
	LogoURL:         {"url_logo", "URL_LOGO", "UrlLogo", "logoUrl", "LogoURL", "logo_url", "Logo URL", "Url Logo"},
	Recommendations: {"Recomendações Gerais", "RecomendacoesGerais", "RECOMENDACOES_GERAIS", "recomendacoes_gerais", "Recomendacoes Gerais", "RECOMENDAÇÕES GERAIS"},
	DeclaredTotal:   {"PontuacaoTotal", "Pontuação Total", "PONTUACAO_TOTAL", "Pontuacao_Total", "Pontuacao Total", "pontuacao_total", "NOTA_FINAL", "Nota Final"},

	FirstResponseTime: {"TempoPrimeiraResposta", "Tempo_Primeira_Resposta", "TEMPO_PRIMEIRA_RESPOSTA", "Tempo Primeira Resposta", "tempo_primeira_resposta"},
	BrokerHandoffTime: {"TempoContatoCorretor", "Tempo_Contato_Corretor", "TEMPO_CONTATO_CORRETOR", "Tempo Contato Corretor", "tempo_contato_corretor"},

	FirstResponse: {"PrimeiraResposta", "Primeira_Resposta", "PRIMEIRA_RESPOSTA", "NotaPR", "Nota_PR", "Nota Primeira Resposta", "primeira_resposta", "PR"},
	BrokerHandoff: {"TransferenciaCorretor", "Transferencia_Corretor", "TRANSFERENCIA_CORRETOR", "NotaTC", "Nota_TC", "Nota Transferência Corretor", "transferencia_corretor", "TC"},
	AverageSpeed:  {"VelocidadeMedia", "Velocidade_Media", "VELOCIDADE_MEDIA", "NotaVM", "Nota_VM", "Nota Velocidade Média", "velocidade_media", "VM"},

	Personalization:     {"Personalizacao", "Personalização", "PERSONALIZACAO", "Personalização Atendimento", "personalizacao"},
	Professionalism:     {"Profissionalismo", "PROFISSIONALISMO", "profissionalismo", "Prof"},
	ClientQualification: {"QualificacaoCliente", "Qualificacao_Cliente", "QUALIFICACAO_CLIENTE", "Qualificação Cliente", "qualificacao_cliente"},
	Explanations:        {"ExplicacoesInformacoes", "Explicacoes_Informacoes", "EXPLICACOES_INFORMACOES", "Explicações e Informações", "explicacoes_informacoes"},

	QuantitySent:      {"QuantidadeImoveis", "Quantidade_Imoveis", "QUANTIDADE_IMOVEIS", "Quantidade de Imóveis", "quantidade_imoveis"},
	CriteriaAdherence: {"AderenciaCriterios", "Aderencia_Criterios", "ADERENCIA_CRITERIOS", "Aderência aos Critérios", "aderencia_criterios"},
	MaterialQuality:   {"QualidadeMaterial", "Qualidade_Material", "QUALIDADE_MATERIAL", "Qualidade do Material", "qualidade_material"},

	Persistence:     {"Persistencia", "PERSISTENCIA", "Persistência", "persistencia"},
	FollowUpQuality: {"QualidadeFollowUp", "Qualidade_FollowUp", "QUALIDADE_FOLLOWUP", "Qualidade do Follow-up", "qualidade_followup"},
	FollowUpCount:   {"NumeroFollowUps", "Numero_FollowUps", "NUMERO_FOLLOWUPS", "Número de Follow-ups", "numero_followups"},

	Adaptability:      {"Adaptabilidade", "ADAPTABILIDADE", "adaptabilidade"},
	ObjectionHandling: {"ResolucaoObjecoes", "Resolucao_Objecoes", "RESOLUCAO_OBJECOES", "Resolução de Objeções", "resolucao_objecoes"},
	OverallEfficiency: {"EficienciaGeral", "Eficiencia_Geral", "EFICIENCIA_GERAL", "Eficiência Geral", "eficiencia_geral"},

	ItemsSentFlag:  {"OpcoesImoveisEnviadas", "Opcoes_Imoveis_Enviadas", "OPCOES_IMOVEIS_ENVIADAS", "Opções de Imóveis Enviadas", "opcoes_imoveis_enviadas"},
	ItemsSentCount: {"QuantasOpcoesEnviadas", "Quantas_Opcoes_Enviadas", "QUANTAS_OPCOES_ENVIADAS", "Quantas Opções Enviadas", "quantas_opcoes_enviadas"},
}
