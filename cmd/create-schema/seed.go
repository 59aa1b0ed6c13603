package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

type seedDisease struct {
	Name     string
	Desc     string
	Symptoms string
	Severity int
	Medical  bool
}

type seedPart struct {
	Code     string
	NameKo   string
	NameEn   string
	Desc     string
	Roles    []string
	Obs      []string
	Diseases []seedDisease
}

type seedSystem struct {
	Code   string
	NameKo string
	NameEn string
	Desc   string
	Parts  []seedPart
}

// seedBodyCatalog loads the anatomy catalog: systems, their parts, and
// the representative diseases per part
func seedBodyCatalog(ctx context.Context, pool *pgxpool.Pool) error {
	for _, system := range bodyCatalog {
		var systemID int64
		err := pool.QueryRow(ctx, `
			INSERT INTO body_systems (code, name_ko, name_en, description)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, system.Code, system.NameKo, system.NameEn, system.Desc).Scan(&systemID)
		if err != nil {
			return err
		}

		for _, part := range system.Parts {
			var partID int64
			err := pool.QueryRow(ctx, `
				INSERT INTO body_parts (system_id, code, name_ko, name_en, description, roles, observation_points)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				RETURNING id
			`, systemID, part.Code, part.NameKo, part.NameEn, part.Desc, part.Roles, part.Obs).Scan(&partID)
			if err != nil {
				return err
			}

			for _, disease := range part.Diseases {
				_, err := pool.Exec(ctx, `
					INSERT INTO diseases (body_part_id, name, description, symptoms, severity, requires_medical_attention)
					VALUES ($1, $2, $3, $4, $5, $6)
				`, partID, disease.Name, disease.Desc, disease.Symptoms, disease.Severity, disease.Medical)
				if err != nil {
					return err
				}
			}
		}

		log.Printf("✓ Seeded %s (%s) with %d parts", system.NameKo, system.Code, len(system.Parts))
	}

	return nil
}

var bodyCatalog = []seedSystem{
	{
		Code:   "SKELETAL",
		NameKo: "근골격계",
		NameEn: "Musculoskeletal System",
		Desc:   "몸의 형태를 유지하고 움직임을 담당하며, 장기를 보호하는 뼈와 근육 시스템",
		Parts: []seedPart{
			{
				Code: "KNEE", NameKo: "무릎", NameEn: "Knee",
				Desc:  "대퇴골과 정강이뼈를 연결하며 체중을 지탱하고 다리의 굴곡/신전 운동을 담당하는 인체에서 가장 큰 관절입니다.",
				Roles: []string{"체중 지탱", "다리 굴곡 및 신전", "충격 흡수"},
				Obs:   []string{"부종 및 열감", "관절 가동 범위", "보행 시 통증 여부"},
				Diseases: []seedDisease{
					{Name: "퇴행성 관절염", Desc: "연골이 닳아 뼈와 뼈가 부딪히며 통증을 유발하는 질환", Symptoms: "관절 통증, 붓기, 활동 시 소리", Severity: 3, Medical: true},
					{Name: "반월상 연골 파열", Desc: "무릎 충격 흡수를 담당하는 연골판이 찢어지는 부상", Symptoms: "무릎 걸림 현상, 심한 통증, 부종", Severity: 4, Medical: true},
					{Name: "슬개건염", Desc: "슬개골과 정강이뼈를 잇는 힘줄에 염증이 생기는 질환", Symptoms: "무릎 앞쪽 통증, 점프 시 통증", Severity: 2, Medical: false},
				},
			},
			{
				Code: "SHOULDER", NameKo: "어깨", NameEn: "Shoulder",
				Desc:  "상완골과 견갑골이 만나 이루어지는 관절로, 우리 몸에서 가장 넓은 운동 범위를 가지고 있어 손의 자유로운 사용을 돕습니다.",
				Roles: []string{"팔의 광범위한 운동", "상체 힘 전달", "손의 위치 조정"},
				Obs:   []string{"팔을 들어올릴 때 통증", "어깨 비대칭", "회전근개 파열 징후"},
				Diseases: []seedDisease{
					{Name: "오십견(유착성 관절낭염)", Desc: "어깨 관절 주머니가 굳어 움직임이 제한되는 질환", Symptoms: "극심한 어깨 통증, 팔을 들어올리기 힘듦", Severity: 3, Medical: true},
					{Name: "회전근개 파열", Desc: "어깨를 감싸는 힘줄이 찢어지는 질환", Symptoms: "팔을 올릴 때 특정 각도에서 통증, 근력 약화", Severity: 4, Medical: true},
					{Name: "석회화 건염", Desc: "어깨 힘줄에 석회질(돌)이 생겨 통증을 유발하는 상태", Symptoms: "갑작스럽고 극심한 통증", Severity: 4, Medical: true},
				},
			},
			{
				Code: "SPINE", NameKo: "척추", NameEn: "Spine",
				Desc:  "목에서 꼬리뼈까지 이어지는 뼈 구조물로, 신체의 중심축을 이루어 몸을 지지하고 척수 신경을 보호하는 중요한 역할을 합니다.",
				Roles: []string{"신체 중심축 지지", "척수 보호", "유연한 움직임 제공"},
				Obs:   []string{"자세 불균형(측만)", "허리 디스크 통증", "하지 방사통 유무"},
				Diseases: []seedDisease{
					{Name: "허리 디스크(추간판 탈출증)", Desc: "디스크가 신경을 눌러 통증을 유발하는 질환", Symptoms: "허리 통증, 다리 저림(방사통)", Severity: 4, Medical: true},
					{Name: "척추관 협착증", Desc: "신경이 지나가는 통로가 좁아져 신경을 압박하는 병", Symptoms: "오래 걷기 힘듦, 다리 터질듯한 통증", Severity: 3, Medical: true},
					{Name: "척추 측만증", Desc: "척추가 옆으로 휘어지는 변형", Symptoms: "양쪽 어깨 높이 다름, 골반 비대칭", Severity: 2, Medical: true},
				},
			},
		},
	},
	{
		Code:   "CARDIO",
		NameKo: "심혈관계",
		NameEn: "Cardiovascular System",
		Desc:   "혈액을 순환시켜 산소와 영양분을 공급하고 노폐물을 제거하는 시스템",
		Parts: []seedPart{
			{
				Code: "HEART", NameKo: "심장", NameEn: "Heart",
				Desc:  "강력한 근육으로 이루어진 펌프 기관으로, 규칙적인 수축과 이완을 통해 혈액을 온몸으로 순환시켜 생명을 유지합니다.",
				Roles: []string{"혈액을 펌핑", "산소와 영양분 공급", "노폐물 운반"},
				Obs:   []string{"흉부 압박감", "불규칙한 심박(부정맥)", "호흡 곤란"},
				Diseases: []seedDisease{
					{Name: "협심증", Desc: "심장 혈관이 좁아져 산소 공급이 부족해지는 질환", Symptoms: "가슴 쥐어짜는 통증, 호흡곤란", Severity: 4, Medical: true},
					{Name: "심근경색", Desc: "심장 혈관이 완전히 막혀 심장 근육이 괴사하는 응급 질환", Symptoms: "30분 이상 지속되는 극심한 가슴 통증", Severity: 5, Medical: true},
					{Name: "부정맥", Desc: "심장 박동이 불규칙하게 뛰는 상태", Symptoms: "두근거림, 어지러움, 실신", Severity: 3, Medical: true},
				},
			},
			{
				Code: "AORTA", NameKo: "대동맥", NameEn: "Aorta",
				Desc:  "심장의 좌심실에서 시작되는 우리 몸에서 가장 굵은 동맥으로, 산소가 풍부한 혈액을 전신으로 내보내는 고속도로 역할을 합니다.",
				Roles: []string{"전신으로 혈액 운반", "혈압 유지", "혈류 조절"},
				Obs:   []string{"복부 박동성 덩어리", "등 쪽의 찢어지는 듯한 통증", "혈압 차이"},
				Diseases: []seedDisease{
					{Name: "대동맥 박리", Desc: "대동맥 내막이 찢어져 혈액이 틈으로 들어가는 초응급 질환", Symptoms: "등 쪽의 찢어지는 듯한 격통", Severity: 5, Medical: true},
					{Name: "대동맥류", Desc: "대동맥이 풍선처럼 부풀어 오르는 병", Symptoms: "무증상인 경우 많음, 복부 펄떡이는 덩어리", Severity: 4, Medical: true},
					{Name: "대동맥 축착", Desc: "대동맥 일부가 좁아져 혈류 장애가 생기는 선천성 기형", Symptoms: "고혈압, 다리 맥박 약함", Severity: 3, Medical: true},
				},
			},
		},
	},
	{
		Code:   "RESPIRATORY",
		NameKo: "호흡기계",
		NameEn: "Respiratory System",
		Desc:   "산소를 흡입하고 이산화탄소를 배출하는 가스 교환 시스템",
		Parts: []seedPart{
			{
				Code: "LUNG", NameKo: "폐", NameEn: "Lung",
				Desc:  "가슴 양쪽에 위치한 스펀지 모양의 기관으로, 숨을 들이마셔 혈액에 산소를 공급하고 노폐물인 이산화탄소를 배출합니다.",
				Roles: []string{"가스 교환(산소<->이산화탄소)", "pH 조절", "호흡 유지"},
				Obs:   []string{"기침 및 가래", "청진 시 이상 호흡음", "호흡곤란 정도"},
				Diseases: []seedDisease{
					{Name: "폐렴", Desc: "세균이나 바이러스 등에 의해 폐에 염증이 생기는 질환", Symptoms: "고열, 기침, 누런 가래", Severity: 4, Medical: true},
					{Name: "천식", Desc: "기도가 예민해져 좁아지며 숨쉬기 힘들어지는 알레르기 질환", Symptoms: "쌕쌕거리는 숨소리, 호흡곤란", Severity: 3, Medical: true},
					{Name: "만성 폐쇄성 폐질환(COPD)", Desc: "흡연 등으로 기도가 좁아지고 폐 기능이 저하되는 병", Symptoms: "만성 기침, 운동 시 호흡곤란", Severity: 4, Medical: true},
				},
			},
			{
				Code: "TRACHEA", NameKo: "기관", NameEn: "Trachea",
				Desc:  "후두에서 폐로 공기를 전달하는 튜브 모양의 통로로, 점막과 섬모가 있어 외부 먼지나 이물질을 걸러내는 방어 작용도 수행합니다.",
				Roles: []string{"공기 이동 통로", "이물질 배출(섬모 운동)", "가습 및 온도 조절"},
				Obs:   []string{"그르렁거리는 소리(협착)", "이물감", "호흡 시 목의 함몰"},
				Diseases: []seedDisease{
					{Name: "급성 기관지염", Desc: "기관지에 바이러스나 세균 감염으로 염증이 생기는 병", Symptoms: "심한 기침, 가래, 미열", Severity: 2, Medical: true},
					{Name: "기관 협착", Desc: "기도가 좁아져 호흡이 어려워지는 상태", Symptoms: "호흡 시 거친 소리(천명음)", Severity: 4, Medical: true},
					{Name: "기도 이물", Desc: "음식물 등이 기도로 잘못 넘어가 막히는 응급 상황", Symptoms: "갑작스러운 기침, 호흡곤란, 청색증", Severity: 5, Medical: true},
				},
			},
		},
	},
	{
		Code:   "DIGESTIVE",
		NameKo: "소화기계",
		NameEn: "Digestive System",
		Desc:   "음식물을 섭취, 소화하여 영양분을 흡수하고 찌꺼기를 배출하는 시스템",
		Parts: []seedPart{
			{
				Code: "STOMACH", NameKo: "위", NameEn: "Stomach",
				Desc:  "J자 모양의 주머니로, 강한 산성의 위액을 분비하여 섭취한 음식물을 살균하고 단백질 분해를 시작하며 죽 같은 형태로 만듭니다.",
				Roles: []string{"음식물 저장 및 분쇄", "단백질 소화 시작", "살균 작용(위산)"},
				Obs:   []string{"속쓰림 및 신물", "상복부 통증", "식욕 부진 및 구토"},
				Diseases: []seedDisease{
					{Name: "위염", Desc: "위 점막에 염증이 생기는 흔한 질환", Symptoms: "속쓰림, 소화불량, 구역감", Severity: 2, Medical: true},
					{Name: "위궤양", Desc: "위 점막이 패여 근육층까지 손상된 상태", Symptoms: "식후 명치 통증, 속쓰림, 흑변", Severity: 3, Medical: true},
					{Name: "역류성 식도염", Desc: "위산이 식도로 역류해 염증을 일으키는 질환", Symptoms: "가슴 쓰림(타는 듯한 통증), 신물 역류", Severity: 2, Medical: true},
				},
			},
			{
				Code: "LIVER", NameKo: "간", NameEn: "Liver",
				Desc:  "인체에서 가장 큰 장기로, 영양소 저장 및 대사, 해독 작용, 쓸개즙 생성 등 500가지가 넘는 역할을 수행하는 화학 공장입니다.",
				Roles: []string{"해독 작용", "영양소 대사 및 저장", "쓸개즙 생성"},
				Obs:   []string{"피부 및 안구 황달", "우상복부 통증", "만성 피로감"},
				Diseases: []seedDisease{
					{Name: "지방간", Desc: "간에 지방이 과도하게 쌓이는 상태", Symptoms: "대부분 무증상, 피로감", Severity: 2, Medical: true},
					{Name: "간염(A,B,C형)", Desc: "바이러스 감염 등으로 간에 염증이 생기는 질환", Symptoms: "황달, 피로, 식욕부진, 갈색 소변", Severity: 3, Medical: true},
					{Name: "간경변증", Desc: "만성 염증으로 간이 딱딱하게 굳어 기능을 잃는 상태", Symptoms: "복수, 황달, 토혈", Severity: 5, Medical: true},
				},
			},
			{
				Code: "INTESTINE", NameKo: "장", NameEn: "Intestine",
				Desc:  "소장과 대장으로 이루어진 긴 관으로, 음식물의 최종 소화와 영양분 흡수가 이루어지며 남은 찌꺼기를 수분 흡수 후 배출합니다.",
				Roles: []string{"영양분 흡수", "수분 재흡수", "배변 활동"},
				Obs:   []string{"설사 또는 변비", "복부 팽만감", "혈변 유무"},
				Diseases: []seedDisease{
					{Name: "과민성 대장 증후군", Desc: "기질적 원인 없이 배변 습관 변화와 복통이 반복되는 질환", Symptoms: "복통, 설사 또는 변비, 가스", Severity: 2, Medical: true},
					{Name: "급성 장염", Desc: "바이러스나 세균, 상한 음식에 의한 염증", Symptoms: "설사, 복통, 구토, 발열", Severity: 2, Medical: true},
					{Name: "충수돌기염(맹장염)", Desc: "맹장 끝 충수돌기에 염증이 생기는 응급 질환", Symptoms: "오른쪽 아랫배 통증, 구토", Severity: 4, Medical: true},
				},
			},
		},
	},
	{
		Code:   "NERVOUS",
		NameKo: "신경계",
		NameEn: "Nervous System",
		Desc:   "신체 내외부의 자극을 감지하고 판단하여 반응을 조절하는 정보 전달 시스템",
		Parts: []seedPart{
			{
				Code: "BRAIN", NameKo: "뇌", NameEn: "Brain",
				Desc:  "두개골 안에 위치한 신경계의 사령탑으로, 기억, 감정, 언어, 판단력 등 고등 정신 작용과 신체의 모든 생명 활동을 관장합니다.",
				Roles: []string{"인지 및 기억", "운동 및 감각 조절", "생명 활동 유지"},
				Obs:   []string{"두통 및 어지럼증", "말어눌함(언어 장애)", "의식 수준 변화"},
				Diseases: []seedDisease{
					{Name: "뇌졸중(중풍)", Desc: "뇌혈관이 막히거나 터져 뇌세포가 손상되는 질환", Symptoms: "한쪽 팔다리 마비, 언어장애, 심한 두통", Severity: 5, Medical: true},
					{Name: "편두통", Desc: "혈관성 원인 등으로 발생하는 반복적인 두통", Symptoms: "욱신거리는 두통, 구역질, 빛/소리 과민", Severity: 3, Medical: true},
					{Name: "알츠하이머 치매", Desc: "뇌세포 퇴화로 기억력과 인지 기능이 점차 저하되는 병", Symptoms: "기억력 감퇴, 길 잃음, 성격 변화", Severity: 4, Medical: true},
				},
			},
		},
	},
}
