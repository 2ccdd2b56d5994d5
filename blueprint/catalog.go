package blueprint

import "beacon-api/domain"

// Catalog is the current compliance blueprint shipped with the service.
// Template ids are stable: they double as task ids on instantiated boards
// and as lookup keys for due-date backfill of legacy records.
func Catalog() Blueprint {
	return Blueprint{
		Version: "2026.1",
		Name:    "Jornada de conformidade fiscal e societária",
		Phases: []PhaseGroup{
			{
				ID:        "fase-fundamentos",
				Phase:     domain.PhaseFundamentals,
				Title:     "Fundamentos",
				Summary:   "Levantamento da situação atual da empresa e regularização do básico.",
				Milestone: "Cadastros e regime tributário validados",
				Focus:     []string{"diagnostico", "cadastros"},
				Tasks: []Template{
					{
						ID:          "fundamentos-regime-tributario",
						Title:       "Validar regime tributário vigente",
						Description: "Confirmar com o contador se o enquadramento atual (Simples, Presumido ou Real) ainda é o mais vantajoso para o faturamento projetado.",
						Category:    domain.CategoryCompliance,
						Severity:    domain.SeverityRed,
						Owner:       "Contador",
						Priority:    domain.PriorityHigh,
						Phase:       domain.PhaseFundamentals,
						Pillar:      domain.PillarFiscal,
						DueInDays:   days(5),
						References: []domain.Reference{
							{Label: "LC 123/2006", Description: "Lei do Simples Nacional", URL: "https://www.planalto.gov.br/ccivil_03/leis/lcp/lcp123.htm", Type: "legislacao"},
						},
						Evidences: []domain.Evidence{
							{Label: "Parecer do contador", Description: "Documento com a recomendação de regime para o exercício"},
						},
						Tags: []string{"regime", "enquadramento"},
					},
					{
						ID:          "fundamentos-cnpj-cadastros",
						Title:       "Revisar cadastros do CNPJ",
						Description: "Conferir CNAEs, quadro societário e endereço fiscal na Receita Federal e na junta comercial.",
						Category:    domain.CategoryCompliance,
						Severity:    domain.SeverityAmber,
						Owner:       "Contador",
						Priority:    domain.PriorityHigh,
						Phase:       domain.PhaseFundamentals,
						Pillar:      domain.PillarSocietario,
						DueInDays:   days(7),
						References: []domain.Reference{
							{Label: "Cartão CNPJ", URL: "https://solucoes.receita.fazenda.gov.br/servicos/cnpjreva/cnpjreva_solicitacao.asp", Type: "servico"},
						},
						Evidences: []domain.Evidence{
							{Label: "Cartão CNPJ atualizado"},
							{Label: "Última alteração contratual arquivada"},
						},
						Tags: []string{"cadastro", "cnpj"},
					},
					{
						ID:          "fundamentos-certidoes-negativas",
						Title:       "Emitir certidões negativas",
						Description: "Levantar certidões federais, estaduais, municipais, FGTS e trabalhistas para mapear pendências existentes.",
						Category:    domain.CategoryOperations,
						Severity:    domain.SeverityAmber,
						Owner:       "Financeiro",
						Priority:    domain.PriorityMedium,
						Phase:       domain.PhaseFundamentals,
						Pillar:      domain.PillarFiscal,
						DueInDays:   days(10),
						Evidences: []domain.Evidence{
							{Label: "CND federal"},
							{Label: "CRF do FGTS"},
						},
						Tags: []string{"certidoes"},
					},
					{
						ID:          "fundamentos-obrigacoes-calendario",
						Title:       "Montar calendário de obrigações",
						Description: "Consolidar em um único calendário as obrigações acessórias e os vencimentos de tributos recorrentes.",
						Category:    domain.CategoryPlanning,
						Severity:    domain.SeverityAmber,
						Owner:       "Financeiro",
						Priority:    domain.PriorityHigh,
						Phase:       domain.PhaseFundamentals,
						Pillar:      domain.PillarFiscal,
						DueInDays:   days(12),
						Tags:        []string{"obrigacoes", "calendario"},
					},
					{
						ID:          "fundamentos-contratos-societarios",
						Title:       "Revisar contrato social e acordos de sócios",
						Description: "Verificar se as cláusulas de administração, pró-labore e distribuição de lucros refletem a operação real.",
						Category:    domain.CategoryCompliance,
						Severity:    domain.SeverityGreen,
						Owner:       "Jurídico",
						Priority:    domain.PriorityMedium,
						Phase:       domain.PhaseFundamentals,
						Pillar:      domain.PillarSocietario,
						DueInDays:   days(20),
						Evidences: []domain.Evidence{
							{Label: "Minuta revisada do contrato social"},
						},
						Tags: []string{"societario"},
					},
				},
			},
			{
				ID:        "fase-planejamento",
				Phase:     domain.PhasePlanning,
				Title:     "Planejamento",
				Summary:   "Estruturação de rotinas, orçamento e responsáveis por cada frente.",
				Milestone: "Rotinas fiscais e contábeis definidas com donos",
				Focus:     []string{"rotinas", "orcamento"},
				Tasks: []Template{
					{
						ID:          "planejamento-fluxo-caixa",
						Title:       "Implantar projeção de fluxo de caixa",
						Description: "Projetar entradas e saídas por 12 semanas, separando tributos e folha das demais saídas.",
						Category:    domain.CategoryPlanning,
						Severity:    domain.SeverityAmber,
						Owner:       "Financeiro",
						Priority:    domain.PriorityHigh,
						Phase:       domain.PhasePlanning,
						Pillar:      domain.PillarContabil,
						DueInDays:   days(15),
						Tags:        []string{"caixa", "projecao"},
					},
					{
						ID:          "planejamento-politica-fiscal",
						Title:       "Definir política de emissão e escrituração",
						Description: "Padronizar quem emite notas, com quais CFOPs e como os documentos chegam à contabilidade.",
						Category:    domain.CategoryPlanning,
						Severity:    domain.SeverityAmber,
						Owner:       "Contador",
						Priority:    domain.PriorityMedium,
						Phase:       domain.PhasePlanning,
						Pillar:      domain.PillarFiscal,
						DueInDays:   days(18),
						References: []domain.Reference{
							{Label: "Tabela CFOP", Type: "referencia"},
						},
						Tags: []string{"notas", "escrituracao"},
					},
					{
						ID:          "planejamento-folha-prolabore",
						Title:       "Revisar folha e pró-labore",
						Description: "Conferir enquadramento dos colaboradores, valor de pró-labore dos sócios e incidências de INSS.",
						Category:    domain.CategoryCompliance,
						Severity:    domain.SeverityAmber,
						Owner:       "RH",
						Priority:    domain.PriorityMedium,
						Phase:       domain.PhasePlanning,
						Pillar:      domain.PillarTrabalhista,
						DueInDays:   days(21),
						Evidences: []domain.Evidence{
							{Label: "Relatório de folha do mês"},
						},
						Tags: []string{"folha", "prolabore"},
					},
					{
						ID:          "planejamento-orcamento-tributos",
						Title:       "Orçar carga tributária do exercício",
						Description: "Estimar tributos mês a mês a partir do faturamento projetado e validar com o regime escolhido.",
						Category:    domain.CategoryPlanning,
						Severity:    domain.SeverityGreen,
						Owner:       "Contador",
						Priority:    domain.PriorityMedium,
						Phase:       domain.PhasePlanning,
						Pillar:      domain.PillarFiscal,
						DueInDays:   days(25),
						Tags:        []string{"orcamento", "tributos"},
					},
					{
						ID:          "planejamento-matriz-responsaveis",
						Title:       "Montar matriz de responsáveis",
						Description: "Atribuir um dono para cada obrigação recorrente, com suplente e canal de cobrança.",
						Category:    domain.CategoryOperations,
						Severity:    domain.SeverityGreen,
						Owner:       "Diretoria",
						Priority:    domain.PriorityLow,
						Phase:       domain.PhasePlanning,
						Pillar:      domain.PillarGovernanca,
						DueInDays:   days(28),
						Tags:        []string{"governanca"},
					},
				},
			},
			{
				ID:        "fase-implementacao",
				Phase:     domain.PhaseImplementation,
				Title:     "Implementação",
				Summary:   "Execução das rotinas definidas e correção das pendências mapeadas.",
				Milestone: "Rotinas rodando sem pendências críticas",
				Focus:     []string{"execucao", "regularizacao"},
				Tasks: []Template{
					{
						ID:          "implementacao-parcelamentos",
						Title:       "Negociar pendências e parcelamentos",
						Description: "Regularizar débitos identificados nas certidões, priorizando os que bloqueiam CNDs.",
						Category:    domain.CategoryCompliance,
						Severity:    domain.SeverityRed,
						Owner:       "Financeiro",
						Priority:    domain.PriorityHigh,
						Phase:       domain.PhaseImplementation,
						Pillar:      domain.PillarFiscal,
						DueInDays:   days(35),
						Evidences: []domain.Evidence{
							{Label: "Comprovantes de parcelamento"},
						},
						Tags: []string{"debitos", "parcelamento"},
					},
					{
						ID:          "implementacao-conciliacao-bancaria",
						Title:       "Implantar conciliação bancária mensal",
						Description: "Conciliar extratos com o razão contábil todo fechamento, documentando divergências.",
						Category:    domain.CategoryOperations,
						Severity:    domain.SeverityAmber,
						Owner:       "Financeiro",
						Priority:    domain.PriorityMedium,
						Phase:       domain.PhaseImplementation,
						Pillar:      domain.PillarContabil,
						DueInDays:   days(40),
						Tags:        []string{"conciliacao"},
					},
					{
						ID:          "implementacao-esocial",
						Title:       "Sanear eventos do eSocial",
						Description: "Corrigir eventos rejeitados e admissões fora do prazo apontados pela folha.",
						Category:    domain.CategoryCompliance,
						Severity:    domain.SeverityAmber,
						Owner:       "RH",
						Priority:    domain.PriorityMedium,
						Phase:       domain.PhaseImplementation,
						Pillar:      domain.PillarTrabalhista,
						DueInDays:   days(45),
						References: []domain.Reference{
							{Label: "Portal eSocial", URL: "https://www.gov.br/esocial", Type: "servico"},
						},
						Tags: []string{"esocial"},
					},
					{
						ID:          "implementacao-backup-documentos",
						Title:       "Centralizar guarda de documentos fiscais",
						Description: "Arquivar XMLs, recibos de entrega e comprovantes em repositório único com retenção de 5 anos.",
						Category:    domain.CategoryOperations,
						Severity:    domain.SeverityGreen,
						Owner:       "Financeiro",
						Priority:    domain.PriorityLow,
						Phase:       domain.PhaseImplementation,
						Pillar:      domain.PillarGovernanca,
						DueInDays:   days(50),
						Tags:        []string{"documentos", "retencao"},
					},
				},
			},
			{
				ID:        "fase-monitoramento",
				Phase:     domain.PhaseMonitoring,
				Title:     "Monitoramento",
				Summary:   "Acompanhamento contínuo de prazos, indicadores e mudanças de legislação.",
				Milestone: "Ciclo mensal de revisão funcionando",
				Focus:     []string{"indicadores", "revisao"},
				Tasks: []Template{
					{
						ID:          "monitoramento-fechamento-mensal",
						Title:       "Instituir reunião de fechamento mensal",
						Description: "Revisar com o contador os resultados do mês, pendências de documentos e tributos do período.",
						Category:    domain.CategoryOperations,
						Severity:    domain.SeverityAmber,
						Owner:       "Diretoria",
						Priority:    domain.PriorityMedium,
						Phase:       domain.PhaseMonitoring,
						Pillar:      domain.PillarGovernanca,
						DueInDays:   days(60),
						Tags:        []string{"fechamento", "rotina"},
					},
					{
						ID:          "monitoramento-certidoes-recorrentes",
						Title:       "Automatizar verificação de certidões",
						Description: "Agendar emissão trimestral das certidões negativas e registrar o resultado no painel.",
						Category:    domain.CategoryOperations,
						Severity:    domain.SeverityGreen,
						Owner:       "Financeiro",
						Priority:    domain.PriorityLow,
						Phase:       domain.PhaseMonitoring,
						Pillar:      domain.PillarFiscal,
						DueInDays:   days(75),
						Tags:        []string{"certidoes", "recorrencia"},
					},
					{
						ID:          "monitoramento-legislacao",
						Title:       "Acompanhar mudanças de legislação",
						Description: "Assinar alertas das secretarias de fazenda e revisar impactos no regime e nas alíquotas praticadas.",
						Category:    domain.CategoryCompliance,
						Severity:    domain.SeverityGreen,
						Owner:       "Contador",
						Priority:    domain.PriorityLow,
						Phase:       domain.PhaseMonitoring,
						Pillar:      domain.PillarFiscal,
						Tags:        []string{"legislacao"},
					},
					{
						ID:          "monitoramento-indicadores",
						Title:       "Acompanhar indicadores de conformidade",
						Description: "Revisar mensalmente o percentual de conclusão do plano, tarefas vencidas e pendências críticas.",
						Category:    domain.CategoryPlanning,
						Severity:    domain.SeverityGreen,
						Owner:       "Diretoria",
						Priority:    domain.PriorityMedium,
						Phase:       domain.PhaseMonitoring,
						Pillar:      domain.PillarGovernanca,
						Tags:        []string{"indicadores"},
					},
				},
			},
		},
	}
}

func days(n int) *int { return &n }
