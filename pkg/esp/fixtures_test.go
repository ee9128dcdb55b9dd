package esp

const statusBody = `{
  "status": {
    "capetown": {
      "name": "Cape Town",
      "next_stages": [
        {"stage": "2", "stage_start_timestamp": "2022-08-08T17:00:00+02:00"}
      ],
      "stage": "0",
      "stage_updated": "2022-08-08T00:08:16.837063+02:00"
    },
    "eskom": {
      "name": "National",
      "next_stages": [
        {"stage": 2, "stage_start_timestamp": "2022-08-08T16:00:00+02:00"},
        {"stage": "0", "stage_start_timestamp": "2022-08-09T00:00:00+02:00"}
      ],
      "stage": "1",
      "stage_updated": "2022-08-08T16:12:53.725852+02:00"
    }
  }
}`

const areaBody = `{
  "events": [],
  "info": {"name": "Area A", "region": "Cape Town"},
  "schedule": {"days": [], "source": "eskom"}
}`

const fullAreaBody = `{
  "events": [
    {"end": "2022-08-08T22:30:00+02:00", "note": "Stage 2", "start": "2022-08-08T20:00:00+02:00"}
  ],
  "info": {"name": "Eskde (10)", "region": "Eskom Direct, Ekurhuleni, Gauteng"},
  "schedule": {
    "days": [
      {"date": "2022-08-08", "name": "Monday", "stages": [[], ["20:00-22:30"], ["04:00-06:30", "20:00-22:30"]]},
      {"date": "2022-08-09", "name": "Tuesday", "stages": [["02:00-04:30"], ["02:00-04:30"]]}
    ],
    "source": "https://loadshedding.eskom.co.za/"
  }
}`

const nearbyAreasBody = `{
  "areas": [
    {"count": 2, "id": "eskmo-15-a", "name": "A", "region": "Eskom Municipal"},
    {"count": 1, "id": "eskmo-15-b", "name": "B", "region": "Eskom Municipal"},
    {"count": 5, "id": "eskmo-15-c", "name": "C", "region": "Eskom Municipal"}
  ]
}`

const searchBody = `{
  "areas": [
    {"id": "eskde-10-fourwaysext10cityofjohannesburggauteng", "name": "Fourways Ext 10 (10)", "region": "Eskom Direct, City of Johannesburg, Gauteng"},
    {"id": "jhbcitypower2-8-fourways", "name": "Fourways (8)", "region": "JHB City Power"}
  ]
}`

const topicsBody = `{
  "topics": [
    {"active": "2022-08-08T14:00:00+02:00", "body": "Power out in Fourways", "category": "electricity", "distance": 1.25, "followers": 4, "timestamp": "2022-08-08T13:51:02.123+02:00"},
    {"active": "2022-08-08T15:00:00+02:00", "body": "Back on", "category": "electricity", "distance": 0.5, "followers": 0, "timestamp": "2022-08-08T15:01:00+02:00"}
  ]
}`

const allowanceBody = `{"allowance": {"count": 3, "limit": 50, "type": "daily"}}`
