package memory

import (
	"time"

	"ecodesafios-backend/internal/domain"
)

// SeedQuizzes returns the fixed quiz catalog the service ships with.
func SeedQuizzes() []domain.Quiz {
	return []domain.Quiz{
		{
			ID:    1,
			Title: "Sustentabilidade Básica",
			Questions: []domain.QuizQuestion{
				{
					ID:            1,
					Question:      "Qual é a principal causa do aquecimento global?",
					Options:       []string{"Emissões de gases de efeito estufa", "Buraco na camada de ozônio", "Ciclos solares", "Atividade vulcânica", "Mudanças naturais do clima"},
					CorrectAnswer: 0,
				},
				{
					ID:            2,
					Question:      "Quanto tempo leva para uma garrafa plástica se decompostar na natureza?",
					Options:       []string{"1 ano", "10 anos", "50 anos", "450 anos", "100 anos"},
					CorrectAnswer: 3,
				},
				{
					ID:            3,
					Question:      "Qual fonte de energia é considerada mais sustentável?",
					Options:       []string{"Carvão", "Petróleo", "Solar", "Gás natural", "Nuclear"},
					CorrectAnswer: 2,
				},
				{
					ID:            4,
					Question:      "O que significa ser 'carbono neutro'?",
					Options:       []string{"Não usar combustíveis fósseis", "Equilibrar emissões com remoção de CO2", "Usar apenas energia renovável", "Plantar muitas árvores", "Reduzir 50% das emissões"},
					CorrectAnswer: 1,
				},
				{
					ID:            5,
					Question:      "Qual atividade doméstica consome mais água?",
					Options:       []string{"Lavar louça", "Tomar banho", "Lavar roupa", "Usar vaso sanitário", "Cozinhar"},
					CorrectAnswer: 1,
				},
			},
		},
		{
			ID:    2,
			Title: "Energia Renovável",
			Questions: []domain.QuizQuestion{
				{
					ID:            6,
					Question:      "Qual país lidera em capacidade de energia solar instalada?",
					Options:       []string{"Estados Unidos", "China", "Alemanha", "Japão", "Brasil"},
					CorrectAnswer: 1,
				},
				{
					ID:            7,
					Question:      "A energia eólica funciona melhor em:",
					Options:       []string{"Montanhas", "Desertos", "Costas marítimas", "Florestas", "Cidades"},
					CorrectAnswer: 2,
				},
				{
					ID:            8,
					Question:      "Qual a principal vantagem da energia hidrelétrica?",
					Options:       []string{"Baixo custo", "Não gera poluição", "Armazenamento de energia", "Fácil instalação", "Disponível em qualquer lugar"},
					CorrectAnswer: 2,
				},
				{
					ID:            9,
					Question:      "As fontes renováveis representam quantos % da eletricidade mundial em 2023?",
					Options:       []string{"15%", "20%", "30%", "40%", "50%"},
					CorrectAnswer: 2,
				},
				{
					ID:            10,
					Question:      "Qual tecnologia permite armazenar energia solar para uso noturno?",
					Options:       []string{"Painéis fotovoltaicos", "Baterias", "Turbinas", "Inversores", "Cabos especiais"},
					CorrectAnswer: 1,
				},
			},
		},
		{
			ID:    3,
			Title: "Mudanças Climáticas",
			Questions: []domain.QuizQuestion{
				{
					ID:            11,
					Question:      "Em que ano foi assinado o Acordo de Paris?",
					Options:       []string{"2015", "2016", "2017", "2018", "2020"},
					CorrectAnswer: 0,
				},
				{
					ID:            12,
					Question:      "Qual é a meta global de aquecimento do Acordo de Paris?",
					Options:       []string{"1°C", "1,5°C", "2°C", "2,5°C", "3°C"},
					CorrectAnswer: 1,
				},
				{
					ID:            13,
					Question:      "O que é o 'Dia da Sobrecarga da Terra'?",
					Options:       []string{"Dia com mais terremotos", "Quando esgotamos recursos anuais do planeta", "Dia de maior poluição", "Quando há mais tempestades", "Dia de conscientização ambiental"},
					CorrectAnswer: 1,
				},
				{
					ID:            14,
					Question:      "Em 2024, o Dia da Sobrecarga da Terra foi em:",
					Options:       []string{"1° de junho", "1° de julho", "1° de agosto", "1° de setembro", "1° de outubro"},
					CorrectAnswer: 2,
				},
				{
					ID:            15,
					Question:      "Quantas vezes mais rápido estamos usando os recursos do planeta?",
					Options:       []string{"1,2x", "1,5x", "1,7x", "2x", "2,5x"},
					CorrectAnswer: 2,
				},
			},
		},
	}
}

// SeedChallenges returns the demo challenge set.
func SeedChallenges() []domain.Challenge {
	now := time.Now().UTC().Format(time.RFC3339)
	return []domain.Challenge{
		{
			Title:         "Reduzir Consumo de Água",
			Description:   "Reduza o consumo de água em casa por uma semana usando técnicas simples como banhos mais curtos e fechamento de torneiras.",
			Difficulty:    "Fácil",
			Category:      "Água",
			MaxPoints:     100,
			EstimatedDays: 7,
			Active:        true,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			Title:         "Energia Solar Caseira",
			Description:   "Instale um pequeno sistema de energia solar para carregamento de dispositivos móveis.",
			Difficulty:    "Médio",
			Category:      "Energia",
			MaxPoints:     250,
			EstimatedDays: 30,
			Active:        true,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			Title:         "Transporte Sustentável",
			Description:   "Use apenas transporte público, bicicleta ou caminhada por uma semana inteira.",
			Difficulty:    "Médio",
			Category:      "Transporte",
			MaxPoints:     200,
			EstimatedDays: 7,
			Active:        true,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			Title:         "Compostagem Doméstica",
			Description:   "Crie um sistema de compostagem caseira para resíduos orgânicos da cozinha.",
			Difficulty:    "Difícil",
			Category:      "Resíduos",
			MaxPoints:     300,
			EstimatedDays: 14,
			Active:        true,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			Title:         "Zero Plástico",
			Description:   "Elimine completamente o uso de plástico descartável por um mês.",
			Difficulty:    "Difícil",
			Category:      "Resíduos",
			MaxPoints:     400,
			EstimatedDays: 30,
			Active:        true,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
}
